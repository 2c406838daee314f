// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the schema, connections, and seed data.

# Schema Creation

CreateSchema applies the embedded up migrations for a database type:

	conn, err := db.Open(cfg.Store.DatabaseType, cfg.Store.DatabaseURL)
	if err := db.CreateSchema(conn, cfg.Store.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times. cmd/migrator runs the same files through
golang-migrate via Migrations(dbType) when versioned migrations are wanted.

# Relations

  - polls: question text
  - poll_options: labelled choices ordered by sort_order
  - poll_votes: one row per device per poll, UNIQUE (poll_id, voter_token)
  - poll_vote_totals (view): votes per option
  - poll_option_list (view): option projection read by clients
  - poll_questions (view): question projection read by clients

# Dialects

Dialect and Goqu select the goqu dialect. SQLite uses a sqlite3 variant with
ON CONFLICT (target) DO UPDATE enabled.

# Seeding

	polls:
	  - id: fleet-favorite
	    question: Which ride fits your group?
	    options:
	      - label: Party Bus
	      - label: Stretch Limo
*/
package db
