// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns the server Config, ParseClientFlags the pollctl
ClientConfig plus the remaining positional arguments:

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	ccfg, args, err := cliparse.ParseClientFlags(os.Args[1:])

# Environment Variables

The environment is read first (cleanenv), then flags override it:

	PORT                 → -p (default 3318)
	ALLOWED_ORIGINS      → -origins
	DEVICE_COOKIE_SECRET → -cookie-secret
	DEVICE_COOKIE_SECURE
	LOG_LEVEL            → -log-level
	LOG_ENCODING
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t (postgres or sqlite)
	POSTGREST_URL        → -rest
	POSTGREST_KEY        → -key
	REDIS_ADDR           → -redis
	REDIS_PASSWORD
	REDIS_DB
	TOTALS_CACHE_TTL     → -cache-ttl
	DEVICE_FILE          → -device (pollctl only)

# Validation

  - POSTGREST_URL, or DATABASE_URL with a supported DATABASE_TYPE
  - PORT within 1..65535
*/
package cliparse
