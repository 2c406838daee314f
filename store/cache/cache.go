// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

const (
	totalsPrefix     = "ridepolls:totals:"
	generationPrefix = "ridepolls:totals-gen:"
)

// Cache is a byte-valued TTL cache with atomic counters
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr adds one to the decimal counter at key, starting from 0, and
	// returns the new value. Counters never expire.
	Incr(ctx context.Context, key string) (int64, error)
}

// Store caches OptionTotals in front of another store.Store. Cache failures
// are logged and the underlying store is used directly.
//
// Totals are cached under the poll's current generation. A vote bumps the
// generation, so a read that started before the vote can only fill a key
// nobody looks up anymore.
type Store struct {
	store.Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

func New(next store.Store, c Cache, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{Store: next, cache: c, ttl: ttl, logger: logger}
}

// TotalsKey is the cache key holding a poll's totals at a generation
func TotalsKey(pollID string, generation int64) string {
	return fmt.Sprintf("%s%s:%d", totalsPrefix, pollID, generation)
}

// GenerationKey is the counter bumped by every vote in a poll
func GenerationKey(pollID string) string {
	return generationPrefix + pollID
}

// UpsertVote writes through and moves the poll to a new generation, so a
// read after a successful vote sees it.
func (s *Store) UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error {
	if err := s.Store.UpsertVote(ctx, row, conflictKey); err != nil {
		return err
	}

	gen, err := s.cache.Incr(ctx, GenerationKey(row.PollID))
	if err != nil {
		s.logger.Warn("failed to invalidate totals cache",
			zap.String("poll_id", row.PollID),
			zap.Error(err))
		return nil
	}

	if err := s.cache.Delete(ctx, TotalsKey(row.PollID, gen-1)); err != nil {
		s.logger.Debug("failed to drop previous totals",
			zap.String("poll_id", row.PollID),
			zap.Error(err))
	}
	return nil
}

func (s *Store) OptionTotals(ctx context.Context, pollID string) ([]models.OptionTotal, error) {
	gen, err := s.generation(ctx, pollID)
	if err != nil {
		s.logger.Warn("totals cache read failed", zap.String("poll_id", pollID), zap.Error(err))
		return s.Store.OptionTotals(ctx, pollID)
	}
	key := TotalsKey(pollID, gen)

	data, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("totals cache read failed", zap.String("poll_id", pollID), zap.Error(err))
	case ok:
		var rows []models.OptionTotal
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
		s.logger.Warn("discarding corrupt totals cache entry", zap.String("poll_id", pollID))
	}

	rows, err := s.Store.OptionTotals(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("totals cache write failed", zap.String("poll_id", pollID), zap.Error(err))
		}
	}
	return rows, nil
}

func (s *Store) generation(ctx context.Context, pollID string) (int64, error) {
	data, ok, err := s.cache.Get(ctx, GenerationKey(pollID))
	if err != nil || !ok {
		return 0, err
	}
	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("generation of poll %s: %w", pollID, err)
	}
	return gen, nil
}
