// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package models

import "errors"

// Recommendation error taxonomy. Callers match with errors.Is; producers wrap
// with context using fmt.Errorf("...: %w", Err...).
var (
	// ErrInvalidProfile is returned when a target's instrument, proficiency
	// or genres fall outside the recognized enumerations.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyGroup is returned when a group recommendation is requested
	// for zero members.
	ErrEmptyGroup = errors.New("empty group")

	// ErrInvalidConfiguration is returned at engine construction for bad
	// weights, fusion alpha, neighbor count or rating scale.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidSong is reported for a song that cannot be content scored.
	// It never fails a request; the song is scored as zero content match.
	ErrInvalidSong = errors.New("invalid song")
)
