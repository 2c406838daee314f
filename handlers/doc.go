// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll widget API.

# Handler Types

  - PollHandler: catalog, voting and results
  - DeviceHandler: device identity

	pollHandler := handlers.NewPollHandler(st, cfg, logger)

# Endpoints

	GET  /polls?q=            → ListPolls
	GET  /polls/{id}          → GetPoll (ballot view)
	GET  /polls/{id}/options  → GetOptions
	POST /polls/{id}/votes    → CastVote {"option_id"} (results view)
	GET  /polls/{id}/results  → GetResults
	GET  /devices/me          → GetMe

CastVote drives a shell.Card through Select, so a vote is written before the
totals are read. When the vote succeeds but the totals read fails the
response is still 200 with results_unavailable set.

# Device Identity

The device token comes from X-Device-UUID (native apps) or the signed
rp_device cookie, and a new token is issued as a cookie otherwise.

# Errors

	store.ErrPollNotFound       → 404
	shell.ErrBusy               → 409
	*polls.VoteSubmissionError  → 502
	*polls.ResultsFetchError    → 502
	*polls.OptionsFetchError    → 502
	bad JSON, missing option_id → 400
*/
package handlers
