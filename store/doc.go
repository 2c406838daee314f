// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the boundary to the external poll database.

Implementations:

  - sqlstore: Postgres or SQLite through goqu
  - postgrest: a Supabase / PostgREST endpoint over HTTP
  - cache: read-through totals cache wrapping either of the above

All of them read the same relations (poll_votes, poll_vote_totals,
poll_option_list, poll_questions) named in package models.
*/
package store
