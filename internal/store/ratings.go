// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/encore/internal/metrics"
	"github.com/tomtom215/encore/internal/models"
)

// PutRating creates or replaces the rating for (user, song) and bumps the
// rating version. It returns the new version.
func (s *Store) PutRating(ctx context.Context, rating models.Rating) (uint64, error) {
	return s.PutRatings(ctx, []models.Rating{rating})
}

// PutRatings writes ratings in one transaction with a single version bump.
// A later entry for the same (user, song) wins. An empty slice is a no-op
// and returns the current version.
func (s *Store) PutRatings(ctx context.Context, ratings []models.Rating) (uint64, error) {
	if len(ratings) == 0 {
		return s.RatingVersion(ctx)
	}

	s.ratingMu.Lock()
	defer s.ratingMu.Unlock()

	var version uint64
	err := s.do(ctx, "put_ratings", func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			for i := range ratings {
				r := &ratings[i]
				if err := checkIDs("rating", r.UserID, r.SongID); err != nil {
					return err
				}
				if err := setJSON(txn, ratingKey(r.UserID, r.SongID), r); err != nil {
					return fmt.Errorf("rating user %d song %d: %w", r.UserID, r.SongID, err)
				}
			}

			current, err := readVersion(txn)
			if err != nil {
				return err
			}
			version = current + 1
			return writeVersion(txn, version)
		})
	})
	if err != nil {
		return 0, fmt.Errorf("put ratings: %w", err)
	}

	metrics.SetRatingVersion(version)
	s.logger.Debug().
		Int("count", len(ratings)).
		Uint64("rating_version", version).
		Msg("ratings written")
	return version, nil
}

// Rating returns the rating for (user, song) or ErrNotFound.
func (s *Store) Rating(ctx context.Context, userID, songID int) (models.Rating, error) {
	var rating models.Rating
	err := s.do(ctx, "get_rating", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, ratingKey(userID, songID), &rating)
		})
	})
	if err != nil {
		return models.Rating{}, fmt.Errorf("rating user %d song %d: %w", userID, songID, err)
	}
	return rating, nil
}

// Ratings returns every rating ordered by user, then song.
func (s *Store) Ratings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.do(ctx, "list_ratings", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var err error
			ratings, err = scanJSON[models.Rating](txn, []byte(prefixRating))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// RatingVersion returns the number of rating writes committed so far.
// A fresh store reports zero.
func (s *Store) RatingVersion(ctx context.Context) (uint64, error) {
	var version uint64
	err := s.do(ctx, "get_rating_version", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var err error
			version, err = readVersion(txn)
			return err
		})
	})
	return version, err
}
