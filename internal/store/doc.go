// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

/*
Package store provides BadgerDB-backed persistence for Encore.

The store holds the song catalog, users, groups, campaigns, ratings and the
per-campaign recommended song sets. It implements recommend.CatalogProvider
and recommend.RatingStore, so a scoring snapshot is loaded straight from it:

	st, err := store.Open(store.Config{Path: cfg.Store.Path}, logger)
	if err != nil {
	    return err
	}
	defer st.Close()

	snap, err := recommend.LoadSnapshot(ctx, st, st)

# Records

  - Songs are denormalized with their album and artist.
  - Users keep their genres as a sorted set.
  - Groups must reference existing users; campaigns an existing group.
  - A rating is unique per (user, song); rewriting replaces it.
  - A campaign recommendation is unique per (campaign, song). The set is
    replaced as a whole on reseed.
  - A campaign rating is unique per (campaign, song, user) and may only
    reference a song in the campaign's current set.

# Rating Version

Every committed rating write increments a persisted counter. The engine
keys its neighbor cache on this value; PutRatings bumps it once per batch.

# Encoding

Values are JSON (goccy/go-json). Keys are prefix-scoped with ten-digit,
zero-padded IDs, so IDs must be non-negative and prefix scans return records
in ascending ID order.

# Seeding

LoadFixture imports a JSON document of artists, albums, songs, users,
groups, campaigns and ratings. See testdata/fixture.json for the format.

# Observability

Each operation records encore_store_operations_total and
encore_store_operation_duration_seconds; rating writes publish
encore_rating_version.
*/
package store
