// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/encore/internal/metrics"
	"github.com/tomtom215/encore/internal/models"
)

// testMemTableSize keeps per-test badger arenas small.
const testMemTableSize = 16 << 20

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true, MemTableSize: testMemTableSize}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testSong(id int, genre models.Genre, reqs ...models.Requirement) models.Song {
	return models.Song{
		ID:   id,
		Name: "song",
		Album: models.Album{
			ID:     id * 10,
			Name:   "album",
			Artist: models.Artist{ID: id * 100, Name: "artist", Genre: genre},
		},
		Requirements: reqs,
	}
}

func testUser(id int) models.User {
	return models.User{
		ID:          id,
		Instrument:  models.InstrumentGuitar,
		Proficiency: models.ProficiencyIntermediate,
		Genres:      []models.Genre{models.GenreRock},
	}
}

// putUsers writes users with the given IDs.
func putUsers(t *testing.T, s *Store, ids ...int) {
	t.Helper()
	for _, id := range ids {
		if err := s.PutUser(context.Background(), testUser(id)); err != nil {
			t.Fatalf("PutUser(%d) error = %v", id, err)
		}
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(Config{}, zerolog.Nop()); err == nil {
		t.Error("Open() without path = nil error, want error")
	}
}

func TestClose(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if _, err := s.Songs(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Songs() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.PutRating(ctx, models.Rating{UserID: 1, SongID: 1, Score: 3}); !errors.Is(err, ErrClosed) {
		t.Errorf("PutRating() after Close error = %v, want ErrClosed", err)
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.PutSong(ctx, testSong(1, models.GenreRock)); !errors.Is(err, context.Canceled) {
		t.Errorf("PutSong() error = %v, want context.Canceled", err)
	}
	if _, err := s.Ratings(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Ratings() error = %v, want context.Canceled", err)
	}
}

func TestReopenPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := Config{Path: filepath.Join(t.TempDir(), "db"), MemTableSize: testMemTableSize}

	s, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.PutSong(ctx, testSong(7, models.GenreJazz)); err != nil {
		t.Fatalf("PutSong() error = %v", err)
	}
	if _, err := s.PutRating(ctx, models.Rating{UserID: 1, SongID: 7, Score: 4}); err != nil {
		t.Fatalf("PutRating() error = %v", err)
	}
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	song, err := s.Song(ctx, 7)
	if err != nil {
		t.Fatalf("Song(7) error = %v", err)
	}
	if song.Genre() != models.GenreJazz {
		t.Errorf("Song(7).Genre() = %v, want jazz", song.Genre())
	}
	version, err := s.RatingVersion(ctx)
	if err != nil {
		t.Fatalf("RatingVersion() error = %v", err)
	}
	if version != 1 {
		t.Errorf("RatingVersion() after reopen = %d, want 1", version)
	}
}

func TestRunGCInMemory(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() in memory error = %v, want nil", err)
	}
}

// TestStoreMetrics is not parallel: it reads global counters.
func TestStoreMetrics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	okBefore := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("get_song", metrics.StatusOK))
	errBefore := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("get_song", metrics.StatusError))

	if err := s.PutSong(ctx, testSong(1, models.GenreRock)); err != nil {
		t.Fatalf("PutSong() error = %v", err)
	}
	if _, err := s.Song(ctx, 1); err != nil {
		t.Fatalf("Song(1) error = %v", err)
	}
	if _, err := s.Song(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Song(2) error = %v, want ErrNotFound", err)
	}

	if got := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("get_song", metrics.StatusOK)) - okBefore; got != 1 {
		t.Errorf("get_song ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("get_song", metrics.StatusError)) - errBefore; got != 1 {
		t.Errorf("get_song error delta = %v, want 1", got)
	}

	if _, err := s.PutRatings(ctx, []models.Rating{{UserID: 1, SongID: 1, Score: 2}, {UserID: 2, SongID: 1, Score: 5}}); err != nil {
		t.Fatalf("PutRatings() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.RatingVersion); got != 1 {
		t.Errorf("encore_rating_version = %v, want 1", got)
	}
}
