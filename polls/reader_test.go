// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
	"github.com/danielhkuo/ridepolls/testutil"
)

func TestFetchTotals(t *testing.T) {
	st := new(testutil.MockStore)
	st.On("OptionTotals", mock.Anything, "p1").Return([]models.OptionTotal{
		{OptionID: "A", Votes: 3},
		{OptionID: "B", Votes: 1},
	}, nil)

	totals, err := NewResults(st).FetchTotals(context.Background(), "p1")
	require.NoError(t, err)

	assert.EqualValues(t, 4, totals.TotalVotes)
	assert.Equal(t, 75, totals.Percent("A"))
	assert.Equal(t, 25, totals.Percent("B"))
}

func TestFetchTotals_NoVotes(t *testing.T) {
	st := new(testutil.MockStore)
	st.On("OptionTotals", mock.Anything, "p1").Return([]models.OptionTotal{}, nil)

	totals, err := NewResults(st).FetchTotals(context.Background(), "p1")
	require.NoError(t, err)

	assert.Zero(t, totals.TotalVotes)
	assert.Equal(t, 0, totals.Percent("A"))
}

func TestFetchTotals_Error(t *testing.T) {
	st := new(testutil.MockStore)
	st.On("OptionTotals", mock.Anything, "p1").Return(nil, errors.New("view missing"))

	_, err := NewResults(st).FetchTotals(context.Background(), "p1")

	var rfe *ResultsFetchError
	require.ErrorAs(t, err, &rfe)
	assert.Equal(t, "p1", rfe.PollID)
}

func TestFetchOptionsForPoll(t *testing.T) {
	options := []models.Option{{ID: "o1", Label: "Yes"}, {ID: "o2", Label: "No", SortOrder: 1}}
	st := new(testutil.MockStore)
	st.On("PollOptions", mock.Anything, "p1").Return(options, nil)
	st.On("PollOptions", mock.Anything, "empty").Return(nil, nil)
	st.On("PollOptions", mock.Anything, "broken").Return(nil, errors.New("boom"))

	c := NewCatalog(st)

	got, err := c.FetchOptionsForPoll(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, options, got)

	got, err = c.FetchOptionsForPoll(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = c.FetchOptionsForPoll(context.Background(), "broken")
	var ofe *OptionsFetchError
	assert.ErrorAs(t, err, &ofe)
}

func TestFetchPoll_NotFound(t *testing.T) {
	st := new(testutil.MockStore)
	st.On("Poll", mock.Anything, "missing").Return(models.Poll{}, store.ErrPollNotFound)

	_, err := NewCatalog(st).FetchPoll(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrPollNotFound)
}

func TestFilterPolls(t *testing.T) {
	polls := []models.Poll{
		{ID: "1", Question: "Best Party Bus color?"},
		{ID: "2", Question: "Stretch limo or SUV limo?"},
		{ID: "3", Question: "Which coach bus for the team?"},
	}

	assert.Len(t, FilterPolls(polls, ""), 3)
	assert.Len(t, FilterPolls(polls, "  "), 3)
	assert.Len(t, FilterPolls(polls, "LIMO"), 1)
	assert.Len(t, FilterPolls(polls, "bus"), 2)
	assert.Empty(t, FilterPolls(polls, "yacht"))
	assert.NotNil(t, FilterPolls(nil, ""))
}
