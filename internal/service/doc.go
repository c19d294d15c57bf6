// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

/*
Package service connects the recommendation engine to stored data.

The engine works on plain values; the service looks up users, groups and
campaigns by ID, loads a rating snapshot, and persists the outcome:

  - RecommendForUser: ranked songs for a stored user
  - PreviewCampaign: ranked songs for a campaign's group, not persisted
  - SeedCampaign: ranked songs stored as the campaign's recommended set
  - CreateCampaign: a new campaign for a group, seeded on creation
  - ShowCampaign: a campaign's stored set and member ratings
  - RateSong: catalog rating within the engine's rating scale
  - RateCampaignRecommendation: member rating of a song in the campaign set

Store lookups fail with store.ErrNotFound. Scores outside the scale fail
with ErrInvalidRating; non-members with ErrNotMember; songs outside the
campaign set with ErrNotRecommended; unnamed campaigns with
ErrInvalidCampaign.
*/
package service
