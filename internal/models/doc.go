// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package models defines the domain types shared by the recommendation engine,
// the persistence layer and the command-line front end.
//
// Enumerations (Instrument, Proficiency, Genre) keep the ordinals of the
// original catalog schema so persisted data stays compatible:
//
//	Instrument:  guitar=0 bass=1 drums=2 piano=3
//	Proficiency: beginner=0 intermediate=1 advanced=2
//	Genre:       rock=0 jazz=1 blues=2 country=3 funk=4
//
// A Song belongs to an Album which belongs to an Artist; the song's genre is
// the artist's genre. Songs list zero or more instrument/proficiency
// Requirements describing which players they suit.
package models
