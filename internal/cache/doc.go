// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

/*
Package cache provides a generic, thread-safe LRU cache.

# Overview

The cache provides:
  - Type-safe keys and values via generics
  - O(1) Get and Add with least-recently-used eviction
  - Hit, miss and eviction counters

# Use Cases

The recommendation engine memoizes each user's nearest-neighbor list keyed
by user ID. Entries are only valid for one rating version, so the owner
purges the cache whenever it observes a newer version. Entries never expire
on their own. The current size is exported as the
encore_neighbor_cache_entries gauge.

# Usage Example

	c := cache.NewLRU[int, []algorithms.Neighbor](1024)
	c.Add(userID, neighbors)
	if n, ok := c.Get(userID); ok {
	    // use n
	}
	c.Purge()

# Thread Safety

All methods are safe for concurrent use. A single mutex guards the map and
the list since Get reorders entries.
*/
package cache
