// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import "github.com/puzpuzpuz/xsync/v4"

// MemoryStorage keeps values for the lifetime of the process
type MemoryStorage struct {
	values *xsync.Map[string, string]
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: xsync.NewMap[string, string]()}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values.Load(key)
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.values.Store(key, value)
	return nil
}
