// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/validation"
)

// Fixture is a JSON seed document. Enumerations are written by name
// ("guitar", "advanced", "rock") or ordinal; songs reference albums and
// albums reference artists by ID.
type Fixture struct {
	Artists   []FixtureArtist   `json:"artists" validate:"dive"`
	Albums    []FixtureAlbum    `json:"albums" validate:"dive"`
	Songs     []FixtureSong     `json:"songs" validate:"dive"`
	Users     []FixtureUser     `json:"users" validate:"dive"`
	Groups    []FixtureGroup    `json:"groups" validate:"dive"`
	Campaigns []FixtureCampaign `json:"campaigns" validate:"dive"`
	Ratings   []models.Rating   `json:"ratings"`
}

// FixtureArtist is an artist entry.
type FixtureArtist struct {
	ID    int    `json:"id" validate:"gte=0"`
	Name  string `json:"name" validate:"required"`
	Genre string `json:"genre" validate:"required"`
}

// FixtureAlbum is an album entry.
type FixtureAlbum struct {
	ID       int    `json:"id" validate:"gte=0"`
	Name     string `json:"name" validate:"required"`
	ArtistID int    `json:"artist_id"`
}

// FixtureSong is a song entry.
type FixtureSong struct {
	ID           int                  `json:"id" validate:"gte=0"`
	Name         string               `json:"name" validate:"required"`
	AlbumID      int                  `json:"album_id"`
	Requirements []FixtureRequirement `json:"requirements" validate:"dive"`
}

// FixtureRequirement is one instrument/proficiency pairing of a song.
type FixtureRequirement struct {
	Instrument  string `json:"instrument" validate:"required"`
	Proficiency string `json:"proficiency" validate:"required"`
}

// FixtureUser is a user entry.
type FixtureUser struct {
	ID          int      `json:"id" validate:"gte=0"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Instrument  string   `json:"instrument" validate:"required"`
	Proficiency string   `json:"proficiency" validate:"required"`
	Genres      []string `json:"genres"`
}

// FixtureGroup is a group entry.
type FixtureGroup struct {
	ID          int    `json:"id" validate:"gte=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	AdminUserID int    `json:"admin_user_id"`
	MemberIDs   []int  `json:"member_ids"`
}

// FixtureCampaign is a campaign entry.
type FixtureCampaign struct {
	ID      int       `json:"id" validate:"gte=0"`
	GroupID int       `json:"group_id"`
	Name    string    `json:"name" validate:"required"`
	DueDate time.Time `json:"due_date"`
}

// FixtureStats counts the records a fixture wrote.
type FixtureStats struct {
	Songs     int `json:"songs"`
	Users     int `json:"users"`
	Groups    int `json:"groups"`
	Campaigns int `json:"campaigns"`
	Ratings   int `json:"ratings"`
}

// DecodeFixture reads and validates a fixture. Unknown fields are rejected.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("%w: decode fixture: %v", ErrInvalidRecord, err)
	}
	if verr := validation.ValidateStruct(&fx); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, verr.Error())
	}
	return &fx, nil
}

// LoadFixture decodes a fixture and writes it in dependency order: songs,
// users, groups, campaigns, ratings. Records with existing IDs are
// replaced. Artist and album references and enum names are resolved before
// anything is written. Group members and campaign groups are checked as
// they are written, so a failure there leaves earlier sections applied.
// The group admin is always added as a member.
func (s *Store) LoadFixture(ctx context.Context, r io.Reader) (FixtureStats, error) {
	fx, err := DecodeFixture(r)
	if err != nil {
		return FixtureStats{}, err
	}

	songs, err := fx.resolveSongs()
	if err != nil {
		return FixtureStats{}, err
	}
	users, err := fx.resolveUsers()
	if err != nil {
		return FixtureStats{}, err
	}

	if err := s.PutSongs(ctx, songs); err != nil {
		return FixtureStats{}, err
	}
	for i := range users {
		if err := s.PutUser(ctx, users[i]); err != nil {
			return FixtureStats{}, err
		}
	}

	now := time.Now().UTC()
	for _, g := range fx.Groups {
		group := models.Group{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			AdminUserID: g.AdminUserID,
			MemberIDs:   appendMissing(g.MemberIDs, g.AdminUserID),
			CreatedAt:   now,
		}
		if err := s.PutGroup(ctx, group); err != nil {
			return FixtureStats{}, err
		}
	}
	for _, c := range fx.Campaigns {
		campaign := models.Campaign{
			ID:        c.ID,
			GroupID:   c.GroupID,
			Name:      c.Name,
			DueDate:   c.DueDate,
			CreatedAt: now,
		}
		if err := s.PutCampaign(ctx, campaign); err != nil {
			return FixtureStats{}, err
		}
	}

	if _, err := s.PutRatings(ctx, fx.Ratings); err != nil {
		return FixtureStats{}, err
	}

	stats := FixtureStats{
		Songs:     len(songs),
		Users:     len(users),
		Groups:    len(fx.Groups),
		Campaigns: len(fx.Campaigns),
		Ratings:   len(fx.Ratings),
	}
	s.logger.Info().
		Int("songs", stats.Songs).
		Int("users", stats.Users).
		Int("groups", stats.Groups).
		Int("campaigns", stats.Campaigns).
		Int("ratings", stats.Ratings).
		Msg("fixture loaded")
	return stats, nil
}

func (fx *Fixture) resolveSongs() ([]models.Song, error) {
	artists := make(map[int]models.Artist, len(fx.Artists))
	for _, a := range fx.Artists {
		genre, err := models.ParseGenre(a.Genre)
		if err != nil {
			return nil, fmt.Errorf("%w: artist %d: %v", ErrInvalidRecord, a.ID, err)
		}
		artists[a.ID] = models.Artist{ID: a.ID, Name: a.Name, Genre: genre}
	}

	albums := make(map[int]models.Album, len(fx.Albums))
	for _, a := range fx.Albums {
		artist, ok := artists[a.ArtistID]
		if !ok {
			return nil, fmt.Errorf("%w: album %d references unknown artist %d", ErrInvalidRecord, a.ID, a.ArtistID)
		}
		albums[a.ID] = models.Album{ID: a.ID, Name: a.Name, Artist: artist}
	}

	songs := make([]models.Song, 0, len(fx.Songs))
	for _, sg := range fx.Songs {
		album, ok := albums[sg.AlbumID]
		if !ok {
			return nil, fmt.Errorf("%w: song %d references unknown album %d", ErrInvalidRecord, sg.ID, sg.AlbumID)
		}
		reqs := make([]models.Requirement, 0, len(sg.Requirements))
		for _, r := range sg.Requirements {
			instrument, err := models.ParseInstrument(r.Instrument)
			if err != nil {
				return nil, fmt.Errorf("%w: song %d: %v", ErrInvalidRecord, sg.ID, err)
			}
			proficiency, err := models.ParseProficiency(r.Proficiency)
			if err != nil {
				return nil, fmt.Errorf("%w: song %d: %v", ErrInvalidRecord, sg.ID, err)
			}
			reqs = append(reqs, models.Requirement{Instrument: instrument, Proficiency: proficiency})
		}
		songs = append(songs, models.Song{ID: sg.ID, Name: sg.Name, Album: album, Requirements: reqs})
	}
	return songs, nil
}

func (fx *Fixture) resolveUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(fx.Users))
	for _, u := range fx.Users {
		instrument, err := models.ParseInstrument(u.Instrument)
		if err != nil {
			return nil, fmt.Errorf("%w: user %d: %v", ErrInvalidRecord, u.ID, err)
		}
		proficiency, err := models.ParseProficiency(u.Proficiency)
		if err != nil {
			return nil, fmt.Errorf("%w: user %d: %v", ErrInvalidRecord, u.ID, err)
		}
		genres := make([]models.Genre, 0, len(u.Genres))
		for _, name := range u.Genres {
			g, err := models.ParseGenre(name)
			if err != nil {
				return nil, fmt.Errorf("%w: user %d: %v", ErrInvalidRecord, u.ID, err)
			}
			genres = append(genres, g)
		}
		users = append(users, models.User{
			ID:          u.ID,
			Email:       u.Email,
			Instrument:  instrument,
			Proficiency: proficiency,
			Genres:      genres,
		})
	}
	return users, nil
}

// appendMissing returns ids with id appended if absent.
func appendMissing(ids []int, id int) []int {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(append([]int(nil), ids...), id)
}
