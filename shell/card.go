// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/models"
)

var (
	// ErrBusy rejects a selection while the previous vote is in flight
	ErrBusy = errors.New("vote already in progress")
	// ErrAlreadyVoted rejects a selection once the card shows results
	ErrAlreadyVoted = errors.New("card already shows results")
)

type State string

const (
	StateVoting  State = models.StateVoting
	StateResults State = models.StateResults
)

type Voter interface {
	CastVote(ctx context.Context, pollID, optionID string) error
}

type TotalsFetcher interface {
	FetchTotals(ctx context.Context, pollID string) (models.Totals, error)
}

// Card is one rendered poll. It starts in StateVoting and moves to
// StateResults exactly once; there is no way back.
type Card struct {
	poll    models.Poll
	voter   Voter
	results TotalsFetcher
	logger  *zap.Logger

	mu          sync.Mutex
	state       State
	busy        bool
	selected    string
	totals      models.Totals
	unavailable bool
	err         error
}

func NewCard(poll models.Poll, voter Voter, results TotalsFetcher, logger *zap.Logger) *Card {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Card{
		poll:    poll,
		voter:   voter,
		results: results,
		logger:  logger,
		state:   StateVoting,
	}
}

// NewResultsCard shows a poll's current totals without voting. On a fetch
// failure the card is still returned, marked results-unavailable, along
// with the error.
func NewResultsCard(ctx context.Context, poll models.Poll, results TotalsFetcher, logger *zap.Logger) (*Card, error) {
	c := NewCard(poll, nil, results, logger)
	c.state = StateResults

	totals, err := results.FetchTotals(ctx, poll.ID)
	if err != nil {
		c.unavailable = true
		c.err = err
		return c, err
	}
	c.totals = totals
	return c, nil
}

// Select casts a vote for optionID, then reads the totals. The read starts
// only after the write returned. A failed vote leaves the card in
// StateVoting with its controls enabled. A failed read after a successful
// vote still moves to StateResults, marked results-unavailable, and Select
// returns nil; Err reports the read failure.
func (c *Card) Select(ctx context.Context, optionID string) error {
	c.mu.Lock()
	switch {
	case c.state == StateResults:
		c.mu.Unlock()
		return ErrAlreadyVoted
	case c.busy:
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	if err := c.voter.CastVote(ctx, c.poll.ID, optionID); err != nil {
		c.mu.Lock()
		c.busy = false
		c.err = err
		c.mu.Unlock()
		return err
	}

	totals, err := c.results.FetchTotals(ctx, c.poll.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.state = StateResults
	c.selected = optionID
	c.err = err
	if err != nil {
		c.unavailable = true
		c.logger.Warn("vote recorded but results unavailable",
			zap.String("poll_id", c.poll.ID),
			zap.Error(err))
		return nil
	}
	c.totals = totals
	return nil
}

func (c *Card) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the last vote or results failure, nil after a clean transition
func (c *Card) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// View snapshots what the card should display
func (c *Card) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		PollID:   c.poll.ID,
		Question: c.poll.Question,
		State:    c.state,
		Disabled: c.busy || c.state == StateResults,
		Selected: c.selected,
	}

	if c.state == StateVoting {
		v.Options = c.poll.Options
		if v.Options == nil {
			v.Options = []models.Option{}
		}
		return v
	}

	if c.unavailable {
		v.ResultsUnavailable = true
		return v
	}

	v.TotalVotes = c.totals.TotalVotes
	v.Bars = make([]models.ResultBar, 0, len(c.poll.Options))
	for _, o := range c.poll.Options {
		v.Bars = append(v.Bars, models.ResultBar{
			OptionID: o.ID,
			Label:    o.Label,
			Votes:    c.totals.Count(o.ID),
			Percent:  c.totals.Percent(o.ID),
		})
	}
	return v
}
