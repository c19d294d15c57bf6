// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/encore/internal/models"
)

// CatalogProvider supplies the songs eligible for recommendation.
// This is typically implemented by the store package.
type CatalogProvider interface {
	// Songs returns every song in the catalog with its album, artist and
	// requirements populated.
	Songs(ctx context.Context) ([]models.Song, error)
}

// RatingStore supplies the ratings the collaborative scorer learns from.
type RatingStore interface {
	// Ratings returns every rating in the store.
	Ratings(ctx context.Context) ([]models.Rating, error)

	// RatingVersion returns a counter that increases on every rating write.
	// Zero means the store does not track versions.
	RatingVersion(ctx context.Context) (uint64, error)
}

// Snapshot is an immutable view of the catalog and ratings for one scoring
// pass. Version identifies the rating set for neighbor caching; zero
// disables caching for the pass.
type Snapshot struct {
	Songs   []models.Song
	Ratings []models.Rating
	Version uint64
}

// LoadSnapshot reads the catalog and ratings concurrently. If the rating
// version moves while ratings are being read, the snapshot is returned
// unversioned so a cache entry is never tied to the wrong rating set.
func LoadSnapshot(ctx context.Context, catalog CatalogProvider, ratings RatingStore) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		songs, err := catalog.Songs(gctx)
		if err != nil {
			return fmt.Errorf("load songs: %w", err)
		}
		snap.Songs = songs
		return nil
	})

	g.Go(func() error {
		before, err := ratings.RatingVersion(gctx)
		if err != nil {
			return fmt.Errorf("load rating version: %w", err)
		}
		list, err := ratings.Ratings(gctx)
		if err != nil {
			return fmt.Errorf("load ratings: %w", err)
		}
		after, err := ratings.RatingVersion(gctx)
		if err != nil {
			return fmt.Errorf("load rating version: %w", err)
		}

		snap.Ratings = list
		if before == after {
			snap.Version = after
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
