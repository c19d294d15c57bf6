// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"sync"

	"github.com/tomtom215/encore/internal/cache"
	"github.com/tomtom215/encore/internal/metrics"
	"github.com/tomtom215/encore/internal/recommend/algorithms"
)

// neighborKey identifies one user's neighbor list within one rating version.
type neighborKey struct {
	UserID  int
	Version uint64
}

// neighborCache memoizes neighbor lists across scoring passes. Entries are
// keyed by rating version, and the whole cache is purged the first time a
// newer version is observed, so a list computed from old ratings is never
// served for new ones.
type neighborCache struct {
	mu      sync.Mutex
	latest  uint64
	entries *cache.LRU[neighborKey, []algorithms.Neighbor]
}

// newNeighborCache returns nil when size is zero, which disables caching.
func newNeighborCache(size int) *neighborCache {
	if size <= 0 {
		return nil
	}
	return &neighborCache{
		entries: cache.NewLRU[neighborKey, []algorithms.Neighbor](size),
	}
}

// forVersion returns a per-pass view bound to version, or nil when caching
// is disabled or the snapshot is unversioned (version 0).
func (c *neighborCache) forVersion(version uint64) algorithms.NeighborCache {
	if c == nil || version == 0 {
		return nil
	}

	c.mu.Lock()
	if version > c.latest {
		if c.latest != 0 {
			c.entries.Purge()
			metrics.RecordNeighborCachePurge()
			metrics.SetNeighborCacheEntries(0)
		}
		c.latest = version
	}
	c.mu.Unlock()

	return &versionedNeighbors{cache: c, version: version}
}

// stats returns the underlying LRU statistics.
func (c *neighborCache) stats() cache.Stats {
	if c == nil {
		return cache.Stats{}
	}
	return c.entries.Stats()
}

// versionedNeighbors adapts neighborCache to algorithms.NeighborCache for
// a single rating version.
type versionedNeighbors struct {
	cache   *neighborCache
	version uint64
}

func (v *versionedNeighbors) Get(userID int) ([]algorithms.Neighbor, bool) {
	n, ok := v.cache.entries.Get(neighborKey{UserID: userID, Version: v.version})
	metrics.RecordNeighborCache(ok)
	return n, ok
}

func (v *versionedNeighbors) Add(userID int, neighbors []algorithms.Neighbor) {
	v.cache.entries.Add(neighborKey{UserID: userID, Version: v.version}, neighbors)
	metrics.SetNeighborCacheEntries(v.cache.stats().Size)
}
