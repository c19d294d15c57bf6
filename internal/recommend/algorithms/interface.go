// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package algorithms implements the two scoring signals of the hybrid engine.
//
// # Scorers
//
//   - ContentScorer: profile match from genre, instrument and proficiency
//   - Collaborative: user-KNN over a rating snapshot using Jaccard similarity
//
// Both scorers are pure functions of their inputs. They never fail a
// request for missing signal: an unscorable song is reported with
// models.ErrInvalidSong and a user without neighbors simply has no
// collaborative prediction.
//
// # Thread Safety
//
// A ContentScorer holds only weights. A Collaborative is built once per
// scoring pass over an immutable RatingIndex; the optional NeighborCache it
// consults must be safe for concurrent use.
package algorithms

import (
	"math"

	"github.com/tomtom215/encore/internal/models"
)

// Scorer produces a content score for every song in a catalog.
type Scorer interface {
	ScoreAll(profile models.Profile, songs []models.Song) (scores []float64, invalid []int)
}

// Predictor produces collaborative predictions. Songs without a signal are
// absent from the returned map.
type Predictor interface {
	Predict(userID int, songIDs []int) map[int]float64
	PredictGroup(memberIDs, songIDs []int) map[int]float64
}

// Ensure scorers implement the interfaces.
var (
	_ Scorer    = (*ContentScorer)(nil)
	_ Predictor = (*Collaborative)(nil)
)

// clamp01 bounds x to [0, 1], mapping NaN to 0.
func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// jaccard returns |A ∩ B| / |A ∪ B| given the intersection and set sizes.
func jaccard(intersection, sizeA, sizeB int) float64 {
	union := sizeA + sizeB - intersection
	if union <= 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
