// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package postgrest reads and writes polls through a PostgREST endpoint, the
REST layer of hosted Supabase projects, using the supabase-community
postgrest-go query builder.

	c := postgrest.New("https://abc.supabase.co/rest/v1", anonKey, postgrest.WithLogger(logger))

Votes are posted with on_conflict=<key> and
Prefer: resolution=merge-duplicates. A key without a matching constraint
fails with the PostgREST message "(42P10) there is no unique or exclusion
constraint matching the ON CONFLICT specification", which the vote client
uses to try its next key.

The builder has no per-request context, so a canceled context is checked
before each call and an in-flight request runs to completion.
*/
package postgrest
