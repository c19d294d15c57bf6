// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

/*
Package metrics provides Prometheus instrumentation for the recommendation
engine and its store.

# Overview

Metrics are registered with the default registry through promauto at package
initialization. Callers record through the Record* helpers rather than
touching the vectors directly.

# Available Metrics

Recommendation Metrics:
  - encore_recommend_requests_total: Requests (counter)
    Labels: target (user, campaign), status (ok, error)
  - encore_recommend_duration_seconds: Scoring latency (histogram)
    Labels: target
  - encore_recommend_candidates: Distinct candidates per request (histogram)
    Labels: target
  - encore_recommend_cold_starts_total: Requests for targets without any ratings (counter)
    Labels: target
  - encore_recommend_invalid_songs_total: Songs skipped by content scoring (counter)

Neighbor Cache Metrics:
  - encore_neighbor_cache_hits_total (counter)
  - encore_neighbor_cache_misses_total (counter)
  - encore_neighbor_cache_purges_total (counter)
  - encore_neighbor_cache_entries (gauge)

Store Metrics:
  - encore_store_operations_total: Operations (counter)
    Labels: operation, status
  - encore_store_operation_duration_seconds: Latency (histogram)
    Labels: operation
  - encore_rating_version: Current rating version (gauge)

# Usage Example

	start := time.Now()
	list, err := engine.RecommendForUser(ctx, user, snap, 10)
	metrics.RecordRecommendation(metrics.Outcome{
	    Target:   metrics.TargetUser,
	    Duration: time.Since(start),
	    Err:      err,
	})

# Exposition

The CLI prints gathered values as a table when run with --metrics.
Tests read values through prometheus/testutil.
*/
package metrics
