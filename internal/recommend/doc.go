// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package recommend implements the hybrid song recommendation engine.
//
// # Architecture
//
// A scoring pass fuses two independent signals:
//
//   - Content: how well a song's genre and instrument parts fit the target's
//     profile (see algorithms.ContentScorer)
//   - Collaborative: how neighbors with overlapping ratings rated the song
//     (see algorithms.Collaborative)
//
// The data flow is
//
//	Profile Builder -> {Content, Collaborative} -> Fuse -> RecommendationList
//
// Targets are either one user (RecommendForUser) or the members of a group
// preparing a campaign (RecommendForCampaign). A group is scored through a
// single aggregated profile: the most common instrument, the median
// proficiency and the union of favored genres.
//
// # Design Principles
//
//   - Deterministic: identical inputs produce identical output; ties break
//     by song ID, never by map or insertion order
//   - Stateless: every call receives its own Snapshot of songs and ratings
//   - Absence is not failure: no ratings, no neighbors or an empty catalog
//     produce a content-only or empty list
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//
//	snap, err := recommend.LoadSnapshot(ctx, store, store)
//	if err != nil {
//	    return err
//	}
//
//	list, err := engine.RecommendForUser(ctx, user, snap, 10)
//
// # Thread Safety
//
// The engine is safe for concurrent use. The neighbor cache, keyed by
// rating version, is the only state shared across calls and is purged the
// first time a newer version is seen.
package recommend
