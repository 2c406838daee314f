// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/danielhkuo/ridepolls/models"
)

const (
	colID         = "id"
	colPollID     = "poll_id"
	colOptionID   = "option_id"
	colVoterKey   = "voter_key"
	colVoterToken = "voter_token"
	colLabel      = "label"
	colSortOrder  = "sort_order"
	colQuestion   = "question"
	colVotes      = "votes"
	colCreatedAt  = "created_at"
	colUpdatedAt  = "updated_at"
)

var (
	votesTable = goqu.T(models.TableVotes)

	totalsView          = goqu.T(models.ViewVoteTotals)
	totalsViewPollIDCol = totalsView.Col(colPollID)

	optionListView          = goqu.T(models.ViewOptionList)
	optionListViewPollIDCol = optionListView.Col(colPollID)

	questionsView      = goqu.T(models.ViewPollQuestion)
	questionsViewIDCol = questionsView.Col(colID)
)
