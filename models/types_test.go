// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		count, total int64
		want         int
	}{
		{3, 4, 75},
		{1, 4, 25},
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{4, 4, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.count, tt.total), "%d/%d", tt.count, tt.total)
	}
}

func TestNewTotals(t *testing.T) {
	totals := NewTotals("p1", []OptionTotal{
		{OptionID: "a", Votes: 3},
		{OptionID: "b", Votes: 1},
	})

	assert.Equal(t, "p1", totals.PollID)
	assert.EqualValues(t, 4, totals.TotalVotes)
	assert.EqualValues(t, 3, totals.Count("a"))
	assert.Equal(t, 75, totals.Percent("a"))
	assert.Equal(t, 25, totals.Percent("b"))

	// options absent from the view have no votes
	assert.EqualValues(t, 0, totals.Count("c"))
	assert.Equal(t, 0, totals.Percent("c"))
}

func TestNewTotals_Empty(t *testing.T) {
	totals := NewTotals("p1", nil)

	assert.Zero(t, totals.TotalVotes)
	assert.NotNil(t, totals.Counts)
	assert.Equal(t, 0, totals.Percent("a"))
}

func TestPercent_IndependentRoundingMaySumPast100(t *testing.T) {
	totals := NewTotals("p1", []OptionTotal{
		{OptionID: "a", Votes: 1},
		{OptionID: "b", Votes: 1},
		{OptionID: "c", Votes: 1},
	})

	sum := totals.Percent("a") + totals.Percent("b") + totals.Percent("c")
	assert.Equal(t, 99, sum)
}
