// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/validation"
)

// profileFields are the user fields a profile is built from. Other fields,
// such as a contact email from an outside system, never block scoring.
var profileFields = []string{"Instrument", "Proficiency", "Genres"}

// BuildUserProfile normalizes a user record into a Profile.
// Out-of-range instrument, proficiency or genre values fail with
// models.ErrInvalidProfile.
//
//nolint:gocritic // hugeParam: User is passed by value to keep the caller's record untouched
func BuildUserProfile(user models.User) (models.Profile, error) {
	if verr := validation.ValidateFields(&user, profileFields...); verr != nil {
		return models.Profile{}, fmt.Errorf("%w: user %d: %s", models.ErrInvalidProfile, user.ID, verr.Error())
	}
	return models.NewProfile(user.Instrument, user.Proficiency, user.Genres...), nil
}

// BuildGroupProfile aggregates member profiles into one group profile:
//
//   - instrument: most common among members, ties broken by lowest ordinal
//   - proficiency: median level; for an even count the two middle levels are
//     averaged and an exact half rounds down
//   - genres: union of every member's genres
//
// Members are counted once per user ID; the first record for an ID wins.
// Zero members fail with models.ErrEmptyGroup; a malformed member fails the
// whole group with models.ErrInvalidProfile.
func BuildGroupProfile(members []models.User) (models.Profile, error) {
	if len(members) == 0 {
		return models.Profile{}, models.ErrEmptyGroup
	}

	instrumentCounts := make([]int, len(models.Instruments()))
	levels := make([]int, 0, len(members))
	var genres []models.Genre
	seen := make(map[int]struct{}, len(members))

	for i := range members {
		if _, dup := seen[members[i].ID]; dup {
			continue
		}
		seen[members[i].ID] = struct{}{}

		p, err := BuildUserProfile(members[i])
		if err != nil {
			return models.Profile{}, err
		}
		instrumentCounts[p.Instrument]++
		levels = append(levels, int(p.Proficiency))
		genres = append(genres, p.GenreList()...)
	}

	return models.NewProfile(modeInstrument(instrumentCounts), medianProficiency(levels), genres...), nil
}

// modeInstrument returns the instrument with the highest count. Scanning in
// ordinal order with a strict comparison keeps the lowest ordinal on ties.
func modeInstrument(counts []int) models.Instrument {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return models.Instrument(best)
}

// medianProficiency expects a non-empty slice of valid ordinals.
func medianProficiency(levels []int) models.Proficiency {
	sort.Ints(levels)
	n := len(levels)
	if n%2 == 1 {
		return models.Proficiency(levels[n/2])
	}
	// Ordinals are non-negative, so integer division rounds an exact half down.
	return models.Proficiency((levels[n/2-1] + levels[n/2]) / 2)
}
