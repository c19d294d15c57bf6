// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Recommendation requests (per target kind: user, campaign)
// - Neighbor cache efficiency
// - Store operations (badger)

// Target label values.
const (
	TargetUser     = "user"
	TargetCampaign = "campaign"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"target", "status"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "encore_recommend_duration_seconds",
			Help:    "Duration of recommendation scoring passes in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"target"},
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "encore_recommend_candidates",
			Help:    "Number of distinct candidate songs considered per request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
		[]string{"target"},
	)

	RecommendColdStarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_recommend_cold_starts_total",
			Help: "Requests for targets without any ratings",
		},
		[]string{"target"},
	)

	RecommendInvalidSongs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "encore_recommend_invalid_songs_total",
			Help: "Songs skipped by content scoring for missing or malformed requirements",
		},
	)

	// Neighbor Cache Metrics
	NeighborCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "encore_neighbor_cache_hits_total",
			Help: "Total number of neighbor list cache hits",
		},
	)

	NeighborCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "encore_neighbor_cache_misses_total",
			Help: "Total number of neighbor list cache misses",
		},
	)

	NeighborCachePurges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "encore_neighbor_cache_purges_total",
			Help: "Times the neighbor cache was purged for a newer rating version",
		},
	)

	NeighborCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "encore_neighbor_cache_entries",
			Help: "Neighbor lists currently held in the cache",
		},
	)

	// Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encore_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "encore_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	RatingVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "encore_rating_version",
			Help: "Current rating data version",
		},
	)
)

// Outcome summarizes one scoring pass for RecordRecommendation.
type Outcome struct {
	Target       string
	Duration     time.Duration
	Candidates   int
	ColdStart    bool
	InvalidSongs int
	Err          error
}

// RecordRecommendation records a recommendation request. Failed requests
// only count toward the request total.
//
//nolint:gocritic // hugeParam: Outcome passed by value for call-site brevity
func RecordRecommendation(o Outcome) {
	if o.Err != nil {
		RecommendRequests.WithLabelValues(o.Target, StatusError).Inc()
		return
	}

	RecommendRequests.WithLabelValues(o.Target, StatusOK).Inc()
	RecommendDuration.WithLabelValues(o.Target).Observe(o.Duration.Seconds())
	RecommendCandidates.WithLabelValues(o.Target).Observe(float64(o.Candidates))
	if o.ColdStart {
		RecommendColdStarts.WithLabelValues(o.Target).Inc()
	}
	if o.InvalidSongs > 0 {
		RecommendInvalidSongs.Add(float64(o.InvalidSongs))
	}
}

// RecordNeighborCache records a neighbor cache lookup.
func RecordNeighborCache(hit bool) {
	if hit {
		NeighborCacheHits.Inc()
		return
	}
	NeighborCacheMisses.Inc()
}

// RecordNeighborCachePurge records a version-driven cache purge.
func RecordNeighborCachePurge() {
	NeighborCachePurges.Inc()
}

// SetNeighborCacheEntries publishes the neighbor cache size.
func SetNeighborCacheEntries(n int) {
	NeighborCacheEntries.Set(float64(n))
}

// RecordStoreOperation records a store operation metric.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	StoreOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

// SetRatingVersion publishes the current rating version.
func SetRatingVersion(version uint64) {
	RatingVersion.Set(float64(version))
}

func statusLabel(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
