// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: question text and its ordered options
  - Option: selectable answer with a sort position
  - VoteRow: one device's choice, written to poll_votes
  - OptionTotal: one row of the poll_vote_totals view
  - Totals: per-poll snapshot with percentage helpers

# Request Types

  - CastVoteRequest: option_id

# Response Types

  - ResultBar: option_id, label, votes, percent
  - PollListResponse: polls
  - OptionsResponse: poll_id, options
  - DeviceResponse: device_token
  - ErrorResponse: error, message

# Relations

The same relation names are used by the SQL and PostgREST stores:

	TableVotes       = "poll_votes"
	ViewVoteTotals   = "poll_vote_totals"
	ViewOptionList   = "poll_option_list"
	ViewPollQuestion = "poll_questions"

# Percentages

Percent rounds round(count / total * 100) per option and returns 0 for a
poll without votes:

	t := models.NewTotals("p1", []models.OptionTotal{{"a", 3}, {"b", 1}})
	t.Percent("a") // 75
	t.Percent("b") // 25
*/
package models
