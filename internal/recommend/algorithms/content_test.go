// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/encore/internal/models"
)

const epsilon = 1e-9

func makeSong(id int, genre models.Genre, reqs ...models.Requirement) models.Song {
	return models.Song{
		ID:   id,
		Name: "song",
		Album: models.Album{
			ID:     id,
			Name:   "album",
			Artist: models.Artist{ID: id, Name: "artist", Genre: genre},
		},
		Requirements: reqs,
	}
}

func req(i models.Instrument, p models.Proficiency) models.Requirement {
	return models.Requirement{Instrument: i, Proficiency: p}
}

func TestContentScorer_Score(t *testing.T) {
	guitarist := models.NewProfile(models.InstrumentGuitar, models.ProficiencyAdvanced, models.GenreRock)
	scorer := NewContentScorer(DefaultContentConfig())

	tests := []struct {
		name    string
		profile models.Profile
		song    models.Song
		want    float64
	}{
		{
			name:    "exact match",
			profile: guitarist,
			song:    makeSong(1, models.GenreRock, req(models.InstrumentGuitar, models.ProficiencyAdvanced)),
			want:    1.0,
		},
		{
			name:    "genre mismatch only",
			profile: guitarist,
			song:    makeSong(2, models.GenreJazz, req(models.InstrumentGuitar, models.ProficiencyAdvanced)),
			want:    0.6,
		},
		{
			name:    "one level apart",
			profile: guitarist,
			song:    makeSong(3, models.GenreRock, req(models.InstrumentGuitar, models.ProficiencyIntermediate)),
			want:    0.4 + 0.3 + 0.3*0.5,
		},
		{
			name:    "two levels apart",
			profile: guitarist,
			song:    makeSong(4, models.GenreRock, req(models.InstrumentGuitar, models.ProficiencyBeginner)),
			want:    0.7,
		},
		{
			name:    "no part for instrument",
			profile: guitarist,
			song:    makeSong(5, models.GenreRock, req(models.InstrumentDrums, models.ProficiencyAdvanced)),
			want:    0.4,
		},
		{
			name:    "nothing matches",
			profile: guitarist,
			song:    makeSong(6, models.GenreFunk, req(models.InstrumentPiano, models.ProficiencyBeginner)),
			want:    0,
		},
		{
			name:    "closest of several parts wins",
			profile: guitarist,
			song: makeSong(7, models.GenreRock,
				req(models.InstrumentGuitar, models.ProficiencyBeginner),
				req(models.InstrumentDrums, models.ProficiencyAdvanced),
				req(models.InstrumentGuitar, models.ProficiencyIntermediate),
			),
			want: 0.4 + 0.3 + 0.15,
		},
		{
			name:    "profile without genres",
			profile: models.NewProfile(models.InstrumentBass, models.ProficiencyBeginner),
			song:    makeSong(8, models.GenreBlues, req(models.InstrumentBass, models.ProficiencyBeginner)),
			want:    0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(tt.profile, tt.song)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentScorer_ExactValues(t *testing.T) {
	// The reference scenarios are compared without tolerance.
	scorer := NewContentScorer(DefaultContentConfig())
	profile := models.NewProfile(models.InstrumentGuitar, models.ProficiencyAdvanced, models.GenreRock)

	exact, _ := scorer.Score(profile, makeSong(1, models.GenreRock, req(models.InstrumentGuitar, models.ProficiencyAdvanced)))
	if exact != 1.0 {
		t.Errorf("exact match = %v, want 1.0", exact)
	}

	mismatch, _ := scorer.Score(profile, makeSong(2, models.GenreJazz, req(models.InstrumentGuitar, models.ProficiencyAdvanced)))
	if mismatch != 0.6 {
		t.Errorf("genre mismatch = %v, want 0.6", mismatch)
	}
}

func TestContentScorer_InvalidSong(t *testing.T) {
	scorer := NewContentScorer(DefaultContentConfig())
	profile := models.NewProfile(models.InstrumentGuitar, models.ProficiencyAdvanced, models.GenreRock)

	tests := []struct {
		name string
		song models.Song
	}{
		{name: "no requirements", song: makeSong(1, models.GenreRock)},
		{name: "unknown instrument", song: makeSong(2, models.GenreRock, req(9, models.ProficiencyAdvanced))},
		{name: "unknown proficiency", song: makeSong(3, models.GenreRock, req(models.InstrumentGuitar, 7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(profile, tt.song)
			if !errors.Is(err, models.ErrInvalidSong) {
				t.Errorf("Score() error = %v, want ErrInvalidSong", err)
			}
			if got != 0 {
				t.Errorf("Score() = %v, want 0", got)
			}
		})
	}
}

func TestContentScorer_ScoreAll(t *testing.T) {
	scorer := NewContentScorer(DefaultContentConfig())
	profile := models.NewProfile(models.InstrumentDrums, models.ProficiencyIntermediate, models.GenreFunk)

	songs := []models.Song{
		makeSong(10, models.GenreFunk, req(models.InstrumentDrums, models.ProficiencyIntermediate)),
		makeSong(11, models.GenreFunk),
		makeSong(12, models.GenreRock, req(models.InstrumentDrums, models.ProficiencyAdvanced)),
		makeSong(13, models.GenreJazz),
	}

	scores, invalid := scorer.ScoreAll(profile, songs)

	if len(scores) != len(songs) {
		t.Fatalf("len(scores) = %d, want %d", len(scores), len(songs))
	}
	if scores[0] != 1.0 {
		t.Errorf("scores[0] = %v, want 1.0", scores[0])
	}
	if scores[1] != 0 || scores[3] != 0 {
		t.Errorf("invalid songs scored %v and %v, want 0", scores[1], scores[3])
	}
	if math.Abs(scores[2]-0.45) > epsilon {
		t.Errorf("scores[2] = %v, want 0.45", scores[2])
	}
	if len(invalid) != 2 || invalid[0] != 11 || invalid[1] != 13 {
		t.Errorf("invalid = %v, want [11 13]", invalid)
	}
}

// Every combination of profile and single-requirement song stays in [0, 1],
// including weight splits that push the float sum past 1.
func TestContentScorer_Bounded(t *testing.T) {
	configs := []ContentConfig{
		DefaultContentConfig(),
		{GenreWeight: 0.1, InstrumentWeight: 0.2, ProficiencyWeight: 0.7},
		{GenreWeight: 1},
		{ProficiencyWeight: 1},
	}

	genres := []models.Genre{models.GenreRock, models.GenreJazz, models.GenreBlues, models.GenreCountry, models.GenreFunk}
	levels := []models.Proficiency{models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyAdvanced}

	for _, cfg := range configs {
		scorer := NewContentScorer(cfg)
		for _, inst := range models.Instruments() {
			for _, level := range levels {
				profile := models.NewProfile(inst, level, models.GenreRock, models.GenreBlues)
				for _, g := range genres {
					for _, songInst := range models.Instruments() {
						for _, songLevel := range levels {
							s, err := scorer.Score(profile, makeSong(1, g, req(songInst, songLevel)))
							if err != nil {
								t.Fatalf("Score() error = %v", err)
							}
							if s < 0 || s > 1 {
								t.Fatalf("Score() = %v out of [0, 1] for cfg %+v", s, cfg)
							}
						}
					}
				}
			}
		}
	}
}
