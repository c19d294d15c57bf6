// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Instrument identifies the instrument a musician plays or a song part is written for.
// Ordinals are stable and persisted; do not reorder.
type Instrument int

const (
	// InstrumentGuitar is electric or acoustic guitar.
	InstrumentGuitar Instrument = iota
	// InstrumentBass is bass guitar.
	InstrumentBass
	// InstrumentDrums is a drum kit.
	InstrumentDrums
	// InstrumentPiano is piano or keyboards.
	InstrumentPiano

	instrumentCount
)

var instrumentNames = [...]string{"guitar", "bass", "drums", "piano"}

// String returns the lowercase instrument name.
func (i Instrument) String() string {
	if !i.Valid() {
		return "unknown"
	}
	return instrumentNames[i]
}

// Valid reports whether i is a recognized instrument.
func (i Instrument) Valid() bool {
	return i >= 0 && i < instrumentCount
}

// ParseInstrument parses a case-insensitive instrument name or ordinal.
func ParseInstrument(s string) (Instrument, error) {
	idx, err := parseEnum(s, instrumentNames[:])
	if err != nil {
		return 0, fmt.Errorf("instrument: %w", err)
	}
	return Instrument(idx), nil
}

// Instruments returns every recognized instrument in ordinal order.
func Instruments() []Instrument {
	out := make([]Instrument, 0, instrumentCount)
	for i := Instrument(0); i < instrumentCount; i++ {
		out = append(out, i)
	}
	return out
}

// Proficiency is an ordered skill level. Distance between levels is the
// difference of their ordinals.
type Proficiency int

const (
	// ProficiencyBeginner is an entry-level player.
	ProficiencyBeginner Proficiency = iota
	// ProficiencyIntermediate is a comfortable, gigging-capable player.
	ProficiencyIntermediate
	// ProficiencyAdvanced is an expert player.
	ProficiencyAdvanced

	proficiencyCount
)

// MaxProficiencyDistance is the largest ordinal distance between two levels.
const MaxProficiencyDistance = int(proficiencyCount) - 1

var proficiencyNames = [...]string{"beginner", "intermediate", "advanced"}

// String returns the lowercase level name.
func (p Proficiency) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return proficiencyNames[p]
}

// Valid reports whether p is a recognized level.
func (p Proficiency) Valid() bool {
	return p >= 0 && p < proficiencyCount
}

// Distance returns the absolute ordinal distance between two levels.
func (p Proficiency) Distance(other Proficiency) int {
	d := int(p) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

// ParseProficiency parses a case-insensitive level name or ordinal.
func ParseProficiency(s string) (Proficiency, error) {
	idx, err := parseEnum(s, proficiencyNames[:])
	if err != nil {
		return 0, fmt.Errorf("proficiency: %w", err)
	}
	return Proficiency(idx), nil
}

// Genre is a musical genre. A song inherits its genre from its artist.
type Genre int

const (
	// GenreRock is rock.
	GenreRock Genre = iota
	// GenreJazz is jazz.
	GenreJazz
	// GenreBlues is blues.
	GenreBlues
	// GenreCountry is country.
	GenreCountry
	// GenreFunk is funk.
	GenreFunk

	genreCount
)

var genreNames = [...]string{"rock", "jazz", "blues", "country", "funk"}

// String returns the lowercase genre name.
func (g Genre) String() string {
	if !g.Valid() {
		return "unknown"
	}
	return genreNames[g]
}

// Valid reports whether g is a recognized genre.
func (g Genre) Valid() bool {
	return g >= 0 && g < genreCount
}

// ParseGenre parses a case-insensitive genre name or ordinal.
func ParseGenre(s string) (Genre, error) {
	idx, err := parseEnum(s, genreNames[:])
	if err != nil {
		return 0, fmt.Errorf("genre: %w", err)
	}
	return Genre(idx), nil
}

// parseEnum resolves a name (case-insensitive) or a decimal ordinal against names.
func parseEnum(s string, names []string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == key {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < len(names) {
		return n, nil
	}
	return 0, fmt.Errorf("unrecognized value %q", s)
}

// Artist performs songs and carries the genre of everything it releases.
type Artist struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Genre Genre  `json:"genre"`
}

// Album groups songs released by one artist.
type Album struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Artist Artist `json:"artist"`
}

// Requirement states that a song suits a player of the given instrument at
// the given level. A song may list several, e.g. easy on guitar, hard on drums.
type Requirement struct {
	Instrument  Instrument  `json:"instrument"`
	Proficiency Proficiency `json:"proficiency"`
}

// Song is a catalog entry with its album/artist lineage.
type Song struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Album        Album         `json:"album"`
	Requirements []Requirement `json:"requirements"`
}

// Genre returns the genre inherited from the song's artist.
func (s Song) Genre() Genre {
	return s.Album.Artist.Genre
}

// ArtistName is a convenience accessor for display.
func (s Song) ArtistName() string {
	return s.Album.Artist.Name
}
