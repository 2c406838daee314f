// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls casts votes and reads poll catalogs and totals.

# Voting

A Voter writes the device token under both voter_key and voter_token and
upserts against each conflict key in turn:

	v := polls.NewVoter(st, device.NewProvider(storage, logger), logger)
	err := v.CastVote(ctx, "p1", "o1")

The next key is tried only when the store reports that the previous one has
no matching constraint (message contains "unique", "exclusion constraint
matching" or "does not exist"). Any other failure, or running out of keys,
returns *VoteSubmissionError. Nothing is retried.

# Reading

	totals, err := polls.NewResults(st).FetchTotals(ctx, "p1")
	totals.Percent("o1")

	options, err := polls.NewCatalog(st).FetchOptionsForPoll(ctx, "p1")

Failures are *ResultsFetchError and *OptionsFetchError.
*/
package polls
