// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache puts a read-through cache in front of the vote totals view.

	s := cache.New(sqlstore.New(conn, dbType), cache.NewMemoryCache(), 5*time.Second, logger)

OptionTotals is cached under TotalsKey(pollID, generation), where the
generation is a counter at GenerationKey(pollID). A successful UpsertVote
increments the counter before returning, so a totals read that raced the
vote writes its snapshot under a generation later reads skip. Backends are
MemoryCache (single process, xsync Compute for counters) and RedisCache
(shared, INCR).
*/
package cache
