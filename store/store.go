// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/ridepolls/models"
)

var ErrPollNotFound = errors.New("poll not found")

// VoteWriter upserts one vote row. conflictKey names the columns of the
// uniqueness constraint the upsert resolves against.
type VoteWriter interface {
	UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error
}

// TotalsReader reads the per-option rows of the aggregate view
type TotalsReader interface {
	OptionTotals(ctx context.Context, pollID string) ([]models.OptionTotal, error)
}

// CatalogReader reads poll questions and their options
type CatalogReader interface {
	// PollOptions returns options ordered by sort_order, then id
	PollOptions(ctx context.Context, pollID string) ([]models.Option, error)
	// Poll returns ErrPollNotFound when no poll has the ID
	Poll(ctx context.Context, pollID string) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
}

// Store is the full external database boundary
type Store interface {
	VoteWriter
	TotalsReader
	CatalogReader
}
