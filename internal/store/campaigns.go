// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/encore/internal/models"
)

// ReplaceCampaignRecommendations swaps a campaign's recommended set for recs
// in one transaction. Member ratings of songs that stay in the set are kept;
// ratings of dropped songs are removed with them.
func (s *Store) ReplaceCampaignRecommendations(ctx context.Context, campaignID int, recs []models.CampaignRecommendation) error {
	err := s.do(ctx, "replace_campaign_recommendations", func() error {
		keep := make(map[int]struct{}, len(recs))
		for i := range recs {
			if recs[i].CampaignID != campaignID {
				return fmt.Errorf("%w: recommendation for campaign %d in set for campaign %d",
					ErrInvalidRecord, recs[i].CampaignID, campaignID)
			}
			if err := checkIDs("song", recs[i].SongID); err != nil {
				return err
			}
			if _, dup := keep[recs[i].SongID]; dup {
				return fmt.Errorf("%w: song %d recommended twice", ErrInvalidRecord, recs[i].SongID)
			}
			keep[recs[i].SongID] = struct{}{}
		}

		return s.db.Update(func(txn *badger.Txn) error {
			var campaign models.Campaign
			if err := getJSON(txn, campaignKey(campaignID), &campaign); err != nil {
				return err
			}

			ratings, err := scanJSON[models.CampaignRating](txn, campaignRatingPrefix(campaignID))
			if err != nil {
				return err
			}
			for i := range ratings {
				if _, ok := keep[ratings[i].SongID]; ok {
					continue
				}
				if err := txn.Delete(campaignRatingKey(campaignID, ratings[i].SongID, ratings[i].UserID)); err != nil {
					return fmt.Errorf("delete campaign rating: %w", err)
				}
			}

			if err := deletePrefix(txn, campaignRecPrefix(campaignID)); err != nil {
				return err
			}
			for i := range recs {
				if err := setJSON(txn, campaignRecKey(campaignID, recs[i].SongID), &recs[i]); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("campaign %d recommendations: %w", campaignID, err)
	}

	s.logger.Debug().
		Int("campaign_id", campaignID).
		Int("songs", len(recs)).
		Msg("campaign recommendations replaced")
	return nil
}

// CampaignRecommendations returns a campaign's recommended set ordered by
// rank. A campaign that was never seeded has an empty set.
func (s *Store) CampaignRecommendations(ctx context.Context, campaignID int) ([]models.CampaignRecommendation, error) {
	var recs []models.CampaignRecommendation
	err := s.do(ctx, "list_campaign_recommendations", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var campaign models.Campaign
			if err := getJSON(txn, campaignKey(campaignID), &campaign); err != nil {
				return err
			}
			var err error
			recs, err = scanJSON[models.CampaignRecommendation](txn, campaignRecPrefix(campaignID))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("campaign %d recommendations: %w", campaignID, err)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Rank < recs[j].Rank })
	return recs, nil
}

// PutCampaignRating creates or replaces a member's rating of a campaign
// recommendation. The song must be in the campaign's recommended set.
func (s *Store) PutCampaignRating(ctx context.Context, rating models.CampaignRating) error {
	err := s.do(ctx, "put_campaign_rating", func() error {
		if err := checkIDs("campaign rating", rating.CampaignID, rating.SongID, rating.UserID); err != nil {
			return err
		}
		return s.db.Update(func(txn *badger.Txn) error {
			var rec models.CampaignRecommendation
			if err := getJSON(txn, campaignRecKey(rating.CampaignID, rating.SongID), &rec); err != nil {
				return fmt.Errorf("song %d not recommended: %w", rating.SongID, err)
			}
			return setJSON(txn, campaignRatingKey(rating.CampaignID, rating.SongID, rating.UserID), &rating)
		})
	})
	if err != nil {
		return fmt.Errorf("campaign %d rating: %w", rating.CampaignID, err)
	}
	return nil
}

// CampaignRatings returns a campaign's member ratings ordered by song, then
// user.
func (s *Store) CampaignRatings(ctx context.Context, campaignID int) ([]models.CampaignRating, error) {
	var ratings []models.CampaignRating
	err := s.do(ctx, "list_campaign_ratings", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var err error
			ratings, err = scanJSON[models.CampaignRating](txn, campaignRatingPrefix(campaignID))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("campaign %d ratings: %w", campaignID, err)
	}
	return ratings, nil
}
