// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// Every sweepEvery-th Set drops expired entries, including totals of
// generations that will never be read again.
const sweepEvery = 64

type entry struct {
	value   []byte
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryCache is a process-local Cache. Expired entries are dropped on read
// and by periodic sweeps.
type MemoryCache struct {
	entries *xsync.Map[string, entry]
	now     func() time.Time
	sets    atomic.Uint64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: xsync.NewMap[string, entry](),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := m.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		m.dropIfUnchanged(key, e.expires)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value; a ttl of 0 never expires
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries.Store(key, e)

	if m.sets.Add(1)%sweepEvery == 0 {
		m.sweep()
	}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *MemoryCache) Incr(_ context.Context, key string) (int64, error) {
	var (
		n   int64
		err error
	)
	m.entries.Compute(key, func(old entry, loaded bool) (entry, xsync.ComputeOp) {
		if loaded && !old.expired(m.now()) {
			n, err = strconv.ParseInt(string(old.value), 10, 64)
			if err != nil {
				return old, xsync.CancelOp
			}
		}
		n++
		return entry{value: []byte(strconv.FormatInt(n, 10))}, xsync.UpdateOp
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Len reports the number of stored entries, expired or not
func (m *MemoryCache) Len() int {
	return m.entries.Size()
}

func (m *MemoryCache) sweep() {
	now := m.now()
	m.entries.Range(func(key string, e entry) bool {
		if e.expired(now) {
			m.dropIfUnchanged(key, e.expires)
		}
		return true
	})
}

// dropIfUnchanged deletes key unless it was rewritten since it was read
func (m *MemoryCache) dropIfUnchanged(key string, expires time.Time) {
	m.entries.Compute(key, func(old entry, loaded bool) (entry, xsync.ComputeOp) {
		if loaded && old.expires.Equal(expires) {
			return old, xsync.DeleteOp
		}
		return old, xsync.CancelOp
	})
}
