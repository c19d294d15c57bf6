// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/recommend"
)

var (
	_ recommend.CatalogProvider = (*Store)(nil)
	_ recommend.RatingStore     = (*Store)(nil)
)

func loadTestFixture(t *testing.T, s *Store) FixtureStats {
	t.Helper()
	f, err := os.Open("testdata/fixture.json")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	stats, err := s.LoadFixture(context.Background(), f)
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}
	return stats
}

func TestLoadFixture(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	stats := loadTestFixture(t, s)
	want := FixtureStats{Songs: 4, Users: 3, Groups: 1, Campaigns: 1, Ratings: 2}
	if stats != want {
		t.Errorf("LoadFixture() stats = %+v, want %+v", stats, want)
	}

	song, err := s.Song(ctx, 3)
	if err != nil {
		t.Fatalf("Song(3) error = %v", err)
	}
	if song.ArtistName() != "Led Zeppelin" || song.Genre() != models.GenreRock {
		t.Errorf("Song(3) lineage = %q/%v, want Led Zeppelin/rock", song.ArtistName(), song.Genre())
	}
	wantReqs := []models.Requirement{
		{Instrument: models.InstrumentGuitar, Proficiency: models.ProficiencyIntermediate},
		{Instrument: models.InstrumentDrums, Proficiency: models.ProficiencyAdvanced},
	}
	if !reflect.DeepEqual(song.Requirements, wantReqs) {
		t.Errorf("Song(3).Requirements = %+v, want %+v", song.Requirements, wantReqs)
	}

	user, err := s.User(ctx, 3)
	if err != nil {
		t.Fatalf("User(3) error = %v", err)
	}
	if want := []models.Genre{models.GenreRock, models.GenreBlues}; !reflect.DeepEqual(user.Genres, want) {
		t.Errorf("User(3).Genres = %v, want %v", user.Genres, want)
	}

	group, err := s.Group(ctx, 1)
	if err != nil {
		t.Fatalf("Group(1) error = %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(group.MemberIDs, want) {
		t.Errorf("Group(1).MemberIDs = %v, want %v (admin included)", group.MemberIDs, want)
	}

	campaign, err := s.Campaign(ctx, 1)
	if err != nil {
		t.Fatalf("Campaign(1) error = %v", err)
	}
	if campaign.Name != "Spring Gig" || campaign.DueDate.IsZero() {
		t.Errorf("Campaign(1) = %+v, want Spring Gig with due date", campaign)
	}

	if version, _ := s.RatingVersion(ctx); version != 1 {
		t.Errorf("RatingVersion() = %d, want 1", version)
	}
}

func TestLoadFixtureReload(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	loadTestFixture(t, s)
	loadTestFixture(t, s)

	songs, _ := s.Songs(ctx)
	ratings, _ := s.Ratings(ctx)
	if len(songs) != 4 || len(ratings) != 2 {
		t.Errorf("after reload songs=%d ratings=%d, want 4 and 2", len(songs), len(ratings))
	}
	if version, _ := s.RatingVersion(ctx); version != 2 {
		t.Errorf("RatingVersion() after reload = %d, want 2", version)
	}
}

func TestLoadFixtureSnapshot(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	loadTestFixture(t, s)

	snap, err := recommend.LoadSnapshot(context.Background(), s, s)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(snap.Songs) != 4 || len(snap.Ratings) != 2 || snap.Version != 1 {
		t.Errorf("LoadSnapshot() = %d songs, %d ratings, version %d; want 4, 2, 1",
			len(snap.Songs), len(snap.Ratings), snap.Version)
	}
}

func TestLoadFixtureErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "malformed json",
			input:   `{"songs": [`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown field",
			input:   `{"playlists": []}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "missing artist name",
			input:   `{"artists": [{"id": 1, "genre": "rock"}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown genre",
			input:   `{"artists": [{"id": 1, "name": "A", "genre": "polka"}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown artist",
			input:   `{"albums": [{"id": 1, "name": "B", "artist_id": 4}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name: "unknown album",
			input: `{"artists": [{"id": 1, "name": "A", "genre": "rock"}],
				"songs": [{"id": 1, "name": "S", "album_id": 2}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown instrument",
			input:   `{"users": [{"id": 1, "instrument": "kazoo", "proficiency": "advanced"}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "bad email",
			input:   `{"users": [{"id": 1, "email": "nope", "instrument": "bass", "proficiency": "beginner"}]}`,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "group member missing",
			input:   `{"groups": [{"id": 1, "name": "G", "admin_user_id": 5}]}`,
			wantErr: ErrNotFound,
		},
		{
			name:    "campaign group missing",
			input:   `{"campaigns": [{"id": 1, "group_id": 3, "name": "C"}]}`,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)

			_, err := s.LoadFixture(context.Background(), strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFixture() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFixtureResolvesBeforeWriting(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	input := `{
		"artists": [{"id": 1, "name": "A", "genre": "rock"}],
		"albums": [{"id": 1, "name": "B", "artist_id": 1}],
		"songs": [{"id": 1, "name": "S", "album_id": 1}],
		"users": [{"id": 1, "instrument": "theremin", "proficiency": "advanced"}]
	}`
	if _, err := s.LoadFixture(ctx, strings.NewReader(input)); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("LoadFixture() error = %v, want ErrInvalidRecord", err)
	}
	if songs, _ := s.Songs(ctx); len(songs) != 0 {
		t.Errorf("Songs() after failed load = %d, want 0", len(songs))
	}
}
