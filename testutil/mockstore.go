// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

// MockStore is a testify mock of store.Store
type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

func (m *MockStore) UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error {
	args := m.Called(ctx, row, conflictKey)
	return args.Error(0)
}

func (m *MockStore) OptionTotals(ctx context.Context, pollID string) ([]models.OptionTotal, error) {
	args := m.Called(ctx, pollID)
	rows, _ := args.Get(0).([]models.OptionTotal)
	return rows, args.Error(1)
}

func (m *MockStore) PollOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	args := m.Called(ctx, pollID)
	options, _ := args.Get(0).([]models.Option)
	return options, args.Error(1)
}

func (m *MockStore) Poll(ctx context.Context, pollID string) (models.Poll, error) {
	args := m.Called(ctx, pollID)
	poll, _ := args.Get(0).(models.Poll)
	return poll, args.Error(1)
}

func (m *MockStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	args := m.Called(ctx)
	polls, _ := args.Get(0).([]models.Poll)
	return polls, args.Error(1)
}
