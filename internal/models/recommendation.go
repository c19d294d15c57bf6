// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package models

import "time"

// Candidate is a scoring-pass-local view of one song. It is never persisted.
type Candidate struct {
	// Song is the catalog entry being scored.
	Song Song `json:"song"`

	// ContentScore is the profile match in [0, 1].
	ContentScore float64 `json:"content_score"`

	// CollaborativeScore is the neighbor prediction in [0, 1], or nil when
	// no collaborative signal exists for this song.
	CollaborativeScore *float64 `json:"collaborative_score,omitempty"`

	// FusedScore is the final ranking score.
	FusedScore float64 `json:"fused_score"`
}

// HasCollaborative reports whether a collaborative signal is present.
func (c *Candidate) HasCollaborative() bool {
	return c.CollaborativeScore != nil
}

// RecommendationList is an ordered, song-ID-deduplicated result.
type RecommendationList struct {
	// Items is the ranked list, best first.
	Items []Candidate `json:"items"`

	// TotalCandidates is the number of distinct songs considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries diagnostic information about the scoring pass.
	Metadata ListMetadata `json:"metadata"`
}

// Songs returns the ranked songs without scores.
func (l *RecommendationList) Songs() []Song {
	out := make([]Song, len(l.Items))
	for i := range l.Items {
		out[i] = l.Items[i].Song
	}
	return out
}

// ListMetadata contains timing and diagnostic information.
type ListMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Target describes who the list is for, e.g. "user:3" or "group:1,2,4".
	Target string `json:"target"`

	// ColdStart is true when no target user has rated any song, so every
	// score is content only.
	ColdStart bool `json:"cold_start"`

	// InvalidSongs lists song IDs excluded from content scoring for missing
	// instrument/proficiency metadata.
	InvalidSongs []int `json:"invalid_songs,omitempty"`

	// LatencyMS is the total scoring latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the list was produced.
	Timestamp time.Time `json:"timestamp"`
}
