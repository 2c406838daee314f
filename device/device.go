// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenKey is the storage key holding the device token
const TokenKey = "ridepolls.device_token"

// Storage is a small persistent key/value store scoped to one device
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Provider hands out the stable pseudonymous token for the current device
type Provider struct {
	storage Storage
	logger  *zap.Logger
}

func NewProvider(storage Storage, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{storage: storage, logger: logger}
}

// Token returns the stored device token, creating and persisting one on first
// use. It never fails: without usable storage every call yields a fresh token.
func (p *Provider) Token() string {
	if p.storage == nil {
		p.logger.Warn("device storage unavailable, using ephemeral token")
		return NewToken()
	}

	token, ok, err := p.storage.Get(TokenKey)
	if err != nil {
		p.logger.Warn("device storage read failed, using ephemeral token", zap.Error(err))
		return NewToken()
	}
	if ok && token != "" {
		return token
	}

	token = NewToken()
	if err := p.storage.Set(TokenKey, token); err != nil {
		p.logger.Warn("failed to persist device token", zap.Error(err))
	}
	return token
}

// NewToken returns a random UUIDv4, or a base36 pseudo-random string if the
// system random source is unavailable
func NewToken() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" +
		strconv.FormatUint(rand.Uint64(), 36)
}
