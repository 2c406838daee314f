// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

type Catalog struct {
	store store.CatalogReader
}

func NewCatalog(r store.CatalogReader) *Catalog {
	return &Catalog{store: r}
}

// FetchOptionsForPoll returns the poll's options by ascending sort_order.
// A poll without options yields an empty, non-nil slice.
func (c *Catalog) FetchOptionsForPoll(ctx context.Context, pollID string) ([]models.Option, error) {
	options, err := c.store.PollOptions(ctx, pollID)
	if err != nil {
		return nil, &OptionsFetchError{PollID: pollID, Err: err}
	}
	if options == nil {
		options = []models.Option{}
	}
	return options, nil
}

// FetchPoll returns the question with its ordered options. An unknown poll
// yields an *OptionsFetchError wrapping store.ErrPollNotFound.
func (c *Catalog) FetchPoll(ctx context.Context, pollID string) (models.Poll, error) {
	poll, err := c.store.Poll(ctx, pollID)
	if err != nil {
		return models.Poll{}, &OptionsFetchError{PollID: pollID, Err: err}
	}

	poll.Options, err = c.FetchOptionsForPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// ListPolls returns every poll whose question contains query, ignoring case
func (c *Catalog) ListPolls(ctx context.Context, query string) ([]models.Poll, error) {
	polls, err := c.store.ListPolls(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing polls: %w", err)
	}
	return FilterPolls(polls, query), nil
}

// FilterPolls keeps polls whose question contains query, case-insensitively.
// A blank query keeps everything.
func FilterPolls(polls []models.Poll, query string) []models.Poll {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if polls == nil {
			return []models.Poll{}
		}
		return polls
	}

	out := []models.Poll{}
	for _, p := range polls {
		if strings.Contains(strings.ToLower(p.Question), q) {
			out = append(out, p)
		}
	}
	return out
}
