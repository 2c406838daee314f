// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/ridepolls/models"
)

var testPoll = models.Poll{
	ID:       "p1",
	Question: "Book us again?",
	Options: []models.Option{
		{ID: "o1", PollID: "p1", Label: "Yes", SortOrder: 0},
		{ID: "o2", PollID: "p1", Label: "No", SortOrder: 1},
	},
}

type voterFunc func(ctx context.Context, pollID, optionID string) error

func (f voterFunc) CastVote(ctx context.Context, pollID, optionID string) error {
	return f(ctx, pollID, optionID)
}

type fetcherFunc func(ctx context.Context, pollID string) (models.Totals, error)

func (f fetcherFunc) FetchTotals(ctx context.Context, pollID string) (models.Totals, error) {
	return f(ctx, pollID)
}

func staticTotals(rows ...models.OptionTotal) fetcherFunc {
	return func(_ context.Context, pollID string) (models.Totals, error) {
		return models.NewTotals(pollID, rows), nil
	}
}

func TestSelect_MovesToResults(t *testing.T) {
	var order []string
	voter := voterFunc(func(_ context.Context, pollID, optionID string) error {
		order = append(order, "vote:"+optionID)
		return nil
	})
	fetch := fetcherFunc(func(_ context.Context, pollID string) (models.Totals, error) {
		order = append(order, "totals")
		return models.NewTotals(pollID, []models.OptionTotal{{OptionID: "o1", Votes: 3}, {OptionID: "o2", Votes: 1}}), nil
	})

	card := NewCard(testPoll, voter, fetch, zaptest.NewLogger(t))
	assert.Equal(t, StateVoting, card.State())
	assert.Len(t, card.View().Options, 2)

	require.NoError(t, card.Select(context.Background(), "o1"))

	assert.Equal(t, []string{"vote:o1", "totals"}, order)
	assert.Equal(t, StateResults, card.State())
	assert.NoError(t, card.Err())

	v := card.View()
	assert.True(t, v.Disabled)
	assert.Equal(t, "o1", v.Selected)
	assert.EqualValues(t, 4, v.TotalVotes)
	require.Len(t, v.Bars, 2)
	assert.Equal(t, models.ResultBar{OptionID: "o1", Label: "Yes", Votes: 3, Percent: 75}, v.Bars[0])
	assert.Equal(t, models.ResultBar{OptionID: "o2", Label: "No", Votes: 1, Percent: 25}, v.Bars[1])
}

func TestSelect_VoteFailureStaysVoting(t *testing.T) {
	cause := errors.New("upsert failed")
	fetched := false
	card := NewCard(testPoll,
		voterFunc(func(context.Context, string, string) error { return cause }),
		fetcherFunc(func(context.Context, string) (models.Totals, error) {
			fetched = true
			return models.Totals{}, nil
		}),
		nil)

	err := card.Select(context.Background(), "o1")

	assert.ErrorIs(t, err, cause)
	assert.False(t, fetched, "totals must not be read after a failed vote")
	assert.Equal(t, StateVoting, card.State())
	assert.False(t, card.View().Disabled, "controls re-enabled")
	assert.ErrorIs(t, card.Err(), cause)
}

func TestSelect_RetryAfterFailure(t *testing.T) {
	fail := true
	card := NewCard(testPoll,
		voterFunc(func(context.Context, string, string) error {
			if fail {
				fail = false
				return errors.New("flaky")
			}
			return nil
		}),
		staticTotals(models.OptionTotal{OptionID: "o2", Votes: 1}),
		nil)

	assert.Error(t, card.Select(context.Background(), "o2"))
	require.NoError(t, card.Select(context.Background(), "o2"))
	assert.Equal(t, StateResults, card.State())
}

func TestSelect_ResultsUnavailable(t *testing.T) {
	cause := errors.New("view timeout")
	card := NewCard(testPoll,
		voterFunc(func(context.Context, string, string) error { return nil }),
		fetcherFunc(func(context.Context, string) (models.Totals, error) { return models.Totals{}, cause }),
		zaptest.NewLogger(t))

	require.NoError(t, card.Select(context.Background(), "o1"))

	assert.Equal(t, StateResults, card.State())
	assert.ErrorIs(t, card.Err(), cause)
	v := card.View()
	assert.True(t, v.ResultsUnavailable)
	assert.Empty(t, v.Bars)
}

func TestSelect_AlreadyVoted(t *testing.T) {
	calls := 0
	card := NewCard(testPoll,
		voterFunc(func(context.Context, string, string) error { calls++; return nil }),
		staticTotals(),
		nil)

	require.NoError(t, card.Select(context.Background(), "o1"))
	assert.ErrorIs(t, card.Select(context.Background(), "o2"), ErrAlreadyVoted)
	assert.Equal(t, 1, calls)
}

func TestSelect_BusyWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	card := NewCard(testPoll,
		voterFunc(func(context.Context, string, string) error {
			close(started)
			<-release
			return nil
		}),
		staticTotals(models.OptionTotal{OptionID: "o1", Votes: 1}),
		nil)

	done := make(chan error, 1)
	go func() { done <- card.Select(context.Background(), "o1") }()

	<-started
	assert.True(t, card.View().Disabled)
	assert.ErrorIs(t, card.Select(context.Background(), "o2"), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "o1", card.View().Selected)
}

func TestSelect_NoOptionsPoll(t *testing.T) {
	card := NewCard(models.Poll{ID: "p2", Question: "Empty?"}, nil, nil, nil)

	v := card.View()
	assert.NotNil(t, v.Options)
	assert.Empty(t, v.Options)
}

func TestNewResultsCard(t *testing.T) {
	card, err := NewResultsCard(context.Background(), testPoll, staticTotals(models.OptionTotal{OptionID: "o2", Votes: 2}), nil)
	require.NoError(t, err)

	assert.Equal(t, StateResults, card.State())
	v := card.View()
	assert.Empty(t, v.Selected)
	assert.Equal(t, 100, v.Bars[1].Percent)
	assert.Equal(t, 0, v.Bars[0].Percent)
	assert.ErrorIs(t, card.Select(context.Background(), "o1"), ErrAlreadyVoted)
}

func TestNewResultsCard_Error(t *testing.T) {
	cause := errors.New("down")
	card, err := NewResultsCard(context.Background(), testPoll,
		fetcherFunc(func(context.Context, string) (models.Totals, error) { return models.Totals{}, cause }), nil)

	assert.ErrorIs(t, err, cause)
	require.NotNil(t, card)
	assert.True(t, card.View().ResultsUnavailable)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewCard(testPoll, nil, nil, nil).View()))
	assert.Equal(t, "Book us again?\n  1) Yes\n  2) No\n", buf.String())

	buf.Reset()
	card, err := NewResultsCard(context.Background(), testPoll,
		staticTotals(models.OptionTotal{OptionID: "o1", Votes: 3}, models.OptionTotal{OptionID: "o2", Votes: 1}), nil)
	require.NoError(t, err)
	require.NoError(t, Render(&buf, card.View()))

	out := buf.String()
	assert.Contains(t, out, "Yes ###############.....  75% (3)")
	assert.Contains(t, out, "No  #####...............  25% (1)")
	assert.Contains(t, out, "4 votes")

	buf.Reset()
	require.NoError(t, Render(&buf, View{Question: "Q", State: StateResults, ResultsUnavailable: true, Selected: "o1"}))
	assert.Contains(t, buf.String(), "Vote recorded. Results are unavailable")
}

func TestRender_ResultsUnavailableWithoutVote(t *testing.T) {
	card, err := NewResultsCard(context.Background(), testPoll,
		fetcherFunc(func(context.Context, string) (models.Totals, error) { return models.Totals{}, errors.New("view down") }), nil)
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, card.View()))
	assert.Equal(t, "Book us again?\n  Results are unavailable right now.\n", buf.String())
	assert.NotContains(t, buf.String(), "Vote recorded")
}
