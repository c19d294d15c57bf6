// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package models

import (
	"sort"
	"time"
)

// User is a musician record as supplied by the surrounding system.
// Instrument and Proficiency are raw values and may be out of range;
// they are validated when a Profile is built.
type User struct {
	ID          int         `json:"id" validate:"gte=0"`
	Email       string      `json:"email,omitempty" validate:"omitempty,email"`
	Instrument  Instrument  `json:"instrument" validate:"instrument"`
	Proficiency Proficiency `json:"proficiency" validate:"proficiency"`
	Genres      []Genre     `json:"genres" validate:"dive,genre"`
}

// Rating is one user's score for one song. At most one rating exists per
// (user, song); a later write replaces the earlier one.
type Rating struct {
	UserID int `json:"user_id"`
	SongID int `json:"song_id"`
	Score  int `json:"score"`
}

// Group is a set of musicians preparing campaigns together.
type Group struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AdminUserID int       `json:"admin_user_id"`
	MemberIDs   []int     `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// Campaign is a rehearsal or performance goal for a group.
type Campaign struct {
	ID        int       `json:"id"`
	GroupID   int       `json:"group_id"`
	Name      string    `json:"name"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignRecommendation is a song seeded into a campaign. The pair
// (CampaignID, SongID) is unique.
type CampaignRecommendation struct {
	CampaignID int     `json:"campaign_id"`
	SongID     int     `json:"song_id"`
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
}

// CampaignRating is a member's rating of a campaign recommendation. The
// triple (CampaignID, SongID, UserID) is unique.
type CampaignRating struct {
	CampaignID int `json:"campaign_id"`
	SongID     int `json:"song_id"`
	UserID     int `json:"user_id"`
	Score      int `json:"score"`
}

// Profile is the normalized musical target used for content scoring.
// It is immutable once built; accessors never expose the backing set.
type Profile struct {
	Instrument  Instrument
	Proficiency Proficiency
	genres      map[Genre]struct{}
}

// NewProfile builds a profile, collapsing duplicate genres.
func NewProfile(instrument Instrument, proficiency Proficiency, genres ...Genre) Profile {
	set := make(map[Genre]struct{}, len(genres))
	for _, g := range genres {
		set[g] = struct{}{}
	}
	return Profile{
		Instrument:  instrument,
		Proficiency: proficiency,
		genres:      set,
	}
}

// HasGenre reports whether g is one of the profile's favored genres.
func (p Profile) HasGenre(g Genre) bool {
	_, ok := p.genres[g]
	return ok
}

// GenreList returns the favored genres in ascending ordinal order.
func (p Profile) GenreList() []Genre {
	out := make([]Genre, 0, len(p.genres))
	for g := range p.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
