// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package cache provides a thread-safe in-memory LRU cache with TTL expiry.

The recommendation engine uses it to memoize query results. Keys embed the
snapshot version and configuration generation, so a reload or a config
change never serves a stale ranking; old keys simply age out.

# Usage Example

	c := cache.NewLRU[*Result](1024, 10*time.Minute)
	if res, ok := c.Get(key); ok {
	    return res
	}
	res := compute()
	c.Add(key, res)

# Expiry

Expiry is lazy: an expired entry is dropped on the Get that finds it, or by
CleanupExpired. Len counts expired entries that have not been collected.

# Thread Safety

All methods are safe for concurrent use. Stats returns a consistent copy of
the hit, miss and eviction counters.
*/
package cache
