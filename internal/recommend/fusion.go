// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"sort"

	"github.com/tomtom215/encore/internal/models"
)

// Fuse merges candidate signals into one ranked, deduplicated list.
//
// Candidates sharing a song ID collapse into one before scoring: the content
// score is the maximum seen and the collaborative score is the maximum of
// the present ones (absent only if absent everywhere). Each survivor then
// gets
//
//	fused = content                                   without a collaborative signal
//	fused = alpha*content + (1-alpha)*collaborative   otherwise
//
// and the list is sorted by fused score descending, song ID ascending.
// A positive limit truncates the result; limit <= 0 keeps every candidate.
// The input slice is not modified.
func Fuse(candidates []models.Candidate, alpha float64, limit int) []models.Candidate {
	merged := dedupCandidates(candidates)

	for i := range merged {
		c := &merged[i]
		if c.CollaborativeScore == nil {
			c.FusedScore = c.ContentScore
			continue
		}
		c.FusedScore = alpha*c.ContentScore + (1-alpha)*(*c.CollaborativeScore)
	}

	sortCandidates(merged)

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// dedupCandidates collapses candidates by song ID, keeping first-seen song
// metadata. Collaborative scores are copied so the result never aliases the
// input.
func dedupCandidates(candidates []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	pos := make(map[int]int, len(candidates))

	for i := range candidates {
		in := &candidates[i]
		j, seen := pos[in.Song.ID]
		if !seen {
			c := models.Candidate{
				Song:         in.Song,
				ContentScore: in.ContentScore,
			}
			if in.CollaborativeScore != nil {
				c.CollaborativeScore = floatPtr(*in.CollaborativeScore)
			}
			pos[in.Song.ID] = len(out)
			out = append(out, c)
			continue
		}

		c := &out[j]
		if in.ContentScore > c.ContentScore {
			c.ContentScore = in.ContentScore
		}
		if in.CollaborativeScore != nil &&
			(c.CollaborativeScore == nil || *in.CollaborativeScore > *c.CollaborativeScore) {
			c.CollaborativeScore = floatPtr(*in.CollaborativeScore)
		}
	}

	return out
}

// sortCandidates orders by fused score descending, then song ID ascending.
func sortCandidates(c []models.Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].FusedScore != c[j].FusedScore {
			return c[i].FusedScore > c[j].FusedScore
		}
		return c[i].Song.ID < c[j].Song.ID
	})
}

func floatPtr(f float64) *float64 {
	return &f
}
