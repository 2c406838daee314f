// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

type Results struct {
	store store.TotalsReader
}

func NewResults(r store.TotalsReader) *Results {
	return &Results{store: r}
}

// FetchTotals reads the aggregate view for one poll. A poll without votes
// yields TotalVotes 0 and an empty Counts map.
func (r *Results) FetchTotals(ctx context.Context, pollID string) (models.Totals, error) {
	rows, err := r.store.OptionTotals(ctx, pollID)
	if err != nil {
		return models.Totals{}, &ResultsFetchError{PollID: pollID, Err: err}
	}
	return models.NewTotals(pollID, rows), nil
}
