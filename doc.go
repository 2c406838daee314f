// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ridepolls API server.

ridepolls backs the quick poll cards on the party bus and limousine rental
pages: a visitor picks an option, the vote is upserted once per device, and
the card flips to percentage bars.

# Starting the Server

	DATABASE_URL=postgres://... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -t sqlite -d "file:ridepolls.db"

Or against a hosted Supabase project:

	POSTGREST_URL=https://<project>.supabase.co/rest/v1 POSTGREST_KEY=... go run .

A .env file in the working directory is loaded first.

# Configuration

See package cliparse. The most common settings:

  - DATABASE_URL (-d), DATABASE_TYPE (-t): SQL backend
  - POSTGREST_URL (-rest), POSTGREST_KEY (-key): REST backend
  - PORT (-p): Server port (default: 3318)
  - ALLOWED_ORIGINS: Marketing site origins for CORS
  - DEVICE_COOKIE_SECRET: HMAC key for device cookies
  - TOTALS_CACHE_TTL, REDIS_ADDR: totals cache

# Architecture

  - device: per-device voter token
  - polls: vote submission, totals and catalog reads
  - shell: voting → results card state
  - store, store/sqlstore, store/postgrest, store/cache: database boundary
  - backend: opens the configured store
  - handlers, router, middleware: HTTP surface
  - db: schema, migrations, seeding
  - cmd/pollctl: terminal client; cmd/migrator: migrations

See package documentation for each component.
*/
package main
