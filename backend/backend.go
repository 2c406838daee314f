// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/db"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/store"
	"github.com/danielhkuo/ridepolls/store/cache"
	"github.com/danielhkuo/ridepolls/store/postgrest"
	"github.com/danielhkuo/ridepolls/store/sqlstore"
)

// Backend is an opened store stack. Close releases every connection.
type Backend struct {
	Store store.Store
	// DB is nil for the PostgREST backend
	DB      *sql.DB
	closers []func() error
}

func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open builds the configured store: PostgREST or SQL, optionally wrapped in
// the totals cache. With createSchema the SQL schema is applied on open.
func Open(ctx context.Context, cfg cliparse.StoreConfig, createSchema bool, logger *zap.Logger) (*Backend, error) {
	logger = logging.OrNop(logger)
	b := &Backend{}

	if cfg.UsesPostgrest() {
		b.Store = postgrest.New(cfg.PostgrestURL, cfg.PostgrestKey,
			postgrest.WithLogger(logger.Named("postgrest")))
		logger.Info("using PostgREST backend", zap.String("url", cfg.PostgrestURL))
	} else {
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.DB = conn
		b.closers = append(b.closers, conn.Close)

		if createSchema {
			if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
				b.Close()
				return nil, err
			}
			logger.Info("Database schema ready", zap.String("type", cfg.DatabaseType))
		}
		b.Store = sqlstore.New(conn, cfg.DatabaseType)
	}

	if cfg.TotalsCacheTTL <= 0 {
		return b, nil
	}

	var c cache.Cache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, rc.Close)
		c = rc
	} else {
		c = cache.NewMemoryCache()
	}
	b.Store = cache.New(b.Store, c, cfg.TotalsCacheTTL, logger.Named("cache"))
	logger.Info("totals cache enabled",
		zap.Duration("ttl", cfg.TotalsCacheTTL),
		zap.Bool("redis", cfg.RedisAddr != ""))

	return b, nil
}
