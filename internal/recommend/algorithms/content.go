// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package algorithms

import (
	"fmt"

	"github.com/tomtom215/encore/internal/models"
)

// ContentConfig contains the sub-score weights for content scoring.
type ContentConfig struct {
	// GenreWeight is the importance of a favored-genre match.
	// Default: 0.4.
	GenreWeight float64

	// InstrumentWeight is the importance of a playable part for the
	// profile's instrument.
	// Default: 0.3.
	InstrumentWeight float64

	// ProficiencyWeight is the importance of the part's difficulty being
	// close to the profile's level.
	// Default: 0.3.
	ProficiencyWeight float64
}

// DefaultContentConfig returns the reference weights.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		GenreWeight:       0.4,
		InstrumentWeight:  0.3,
		ProficiencyWeight: 0.3,
	}
}

// ContentScorer rates how well a song fits a musical profile.
//
// The score is a weighted sum of three sub-scores, each in [0, 1]:
//
//	score = w_genre * genre_match +
//	        w_instrument * instrument_match +
//	        w_proficiency * (1 - d / MaxProficiencyDistance)
//
// where d is the smallest level distance among the song's requirements for
// the profile's instrument. Proficiency contributes nothing when no
// requirement matches the instrument.
//
// ContentScorer holds only its weights and is safe for concurrent use.
type ContentScorer struct {
	genreWeight       float64
	instrumentWeight  float64
	proficiencyWeight float64
}

// NewContentScorer creates a scorer. Weights are used as given; callers
// validate them (see recommend.Config.Validate).
func NewContentScorer(cfg ContentConfig) *ContentScorer {
	return &ContentScorer{
		genreWeight:       cfg.GenreWeight,
		instrumentWeight:  cfg.InstrumentWeight,
		proficiencyWeight: cfg.ProficiencyWeight,
	}
}

// Score returns the content match of song for profile in [0, 1].
// A song without requirements cannot be scored and returns
// models.ErrInvalidSong.
//
//nolint:gocritic // hugeParam: Song is read-only here
func (c *ContentScorer) Score(profile models.Profile, song models.Song) (float64, error) {
	if len(song.Requirements) == 0 {
		return 0, fmt.Errorf("%w: song %d has no instrument requirements", models.ErrInvalidSong, song.ID)
	}
	for _, r := range song.Requirements {
		if !r.Instrument.Valid() || !r.Proficiency.Valid() {
			return 0, fmt.Errorf("%w: song %d has requirement %d/%d outside the known levels",
				models.ErrInvalidSong, song.ID, int(r.Instrument), int(r.Proficiency))
		}
	}

	var genreMatch float64
	if profile.HasGenre(song.Genre()) {
		genreMatch = 1
	}

	var instrumentMatch, proficiencyMatch float64
	if d, ok := closestLevel(profile, song.Requirements); ok {
		instrumentMatch = 1
		proficiencyMatch = 1 - float64(d)/float64(models.MaxProficiencyDistance)
	}

	score := c.genreWeight*genreMatch +
		c.instrumentWeight*instrumentMatch +
		c.proficiencyWeight*proficiencyMatch

	return clamp01(score), nil
}

// ScoreAll scores every song against profile. The returned slice is
// index-aligned with songs; songs that could not be scored get 0 and their
// IDs are listed in invalid, in input order.
func (c *ContentScorer) ScoreAll(profile models.Profile, songs []models.Song) (scores []float64, invalid []int) {
	scores = make([]float64, len(songs))
	for i := range songs {
		s, err := c.Score(profile, songs[i])
		if err != nil {
			invalid = append(invalid, songs[i].ID)
			continue
		}
		scores[i] = s
	}
	return scores, invalid
}

// closestLevel returns the smallest proficiency distance among requirements
// for the profile's instrument, and false when none target that instrument.
func closestLevel(profile models.Profile, reqs []models.Requirement) (int, bool) {
	best, found := 0, false
	for _, r := range reqs {
		if r.Instrument != profile.Instrument {
			continue
		}
		d := profile.Proficiency.Distance(r.Proficiency)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}
