// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/encore/internal/logging"
	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/recommend"
)

// Errors
var (
	// ErrInvalidRating is returned for a score outside the configured scale.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrNotMember is returned when a user rates a campaign of a group they
	// do not belong to.
	ErrNotMember = errors.New("not a group member")

	// ErrNotRecommended is returned when a campaign rating names a song
	// outside the campaign's recommended set.
	ErrNotRecommended = errors.New("song not recommended for campaign")

	// ErrInvalidCampaign is returned for a campaign without a name.
	ErrInvalidCampaign = errors.New("invalid campaign")
)

// Store is the persistence the service needs. *store.Store satisfies it.
type Store interface {
	recommend.CatalogProvider
	recommend.RatingStore

	User(ctx context.Context, id int) (models.User, error)
	Song(ctx context.Context, id int) (models.Song, error)
	Campaign(ctx context.Context, id int) (models.Campaign, error)
	CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error)
	Group(ctx context.Context, id int) (models.Group, error)
	GroupMembers(ctx context.Context, groupID int) ([]models.User, error)

	PutRating(ctx context.Context, rating models.Rating) (uint64, error)

	ReplaceCampaignRecommendations(ctx context.Context, campaignID int, recs []models.CampaignRecommendation) error
	CampaignRecommendations(ctx context.Context, campaignID int) ([]models.CampaignRecommendation, error)
	PutCampaignRating(ctx context.Context, rating models.CampaignRating) error
	CampaignRatings(ctx context.Context, campaignID int) ([]models.CampaignRating, error)
}

// CampaignDetail is a campaign with its stored set in rank order and the
// members' ratings of that set ordered by song, then user.
type CampaignDetail struct {
	Campaign        models.Campaign                 `json:"campaign"`
	Recommendations []models.CampaignRecommendation `json:"recommendations"`
	Ratings         []models.CampaignRating         `json:"ratings"`
}

// Service resolves IDs against the store, loads a snapshot and runs the
// engine. It holds no mutable state of its own.
type Service struct {
	store  Store
	engine *recommend.Engine
	scale  recommend.RatingScale
	logger zerolog.Logger
}

// New creates a service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(st Store, engine *recommend.Engine, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		engine: engine,
		scale:  engine.Config().Ratings,
		logger: logger,
	}
}

// RecommendForUser ranks the catalog for a stored user.
func (s *Service) RecommendForUser(ctx context.Context, userID, limit int) (*models.RecommendationList, error) {
	ctx, _ = logging.EnsureRequestID(ctx)

	user, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := recommend.LoadSnapshot(ctx, s.store, s.store)
	if err != nil {
		return nil, err
	}

	return s.engine.RecommendForUser(ctx, user, snap, limit)
}

// PreviewCampaign ranks the catalog for a campaign's group without
// persisting anything.
func (s *Service) PreviewCampaign(ctx context.Context, campaignID, limit int) (*models.RecommendationList, error) {
	ctx, _ = logging.EnsureRequestID(ctx)

	members, err := s.campaignMembers(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	snap, err := recommend.LoadSnapshot(ctx, s.store, s.store)
	if err != nil {
		return nil, err
	}

	return s.engine.RecommendForCampaign(ctx, members, snap, limit)
}

// SeedCampaign ranks the catalog for a campaign's group and stores the
// ranked songs as the campaign's recommended set, replacing any previous
// set. Reseeding with unchanged data yields the same set.
func (s *Service) SeedCampaign(ctx context.Context, campaignID, limit int) (*models.RecommendationList, error) {
	ctx, _ = logging.EnsureRequestID(ctx)

	list, err := s.PreviewCampaign(ctx, campaignID, limit)
	if err != nil {
		return nil, err
	}

	recs := make([]models.CampaignRecommendation, len(list.Items))
	for i := range list.Items {
		recs[i] = models.CampaignRecommendation{
			CampaignID: campaignID,
			SongID:     list.Items[i].Song.ID,
			Rank:       i + 1,
			Score:      list.Items[i].FusedScore,
		}
	}
	if err := s.store.ReplaceCampaignRecommendations(ctx, campaignID, recs); err != nil {
		return nil, err
	}

	logger := logging.Enrich(ctx, s.logger).Int("campaign_id", campaignID).Logger()
	logger.Info().
		Int("songs", len(recs)).
		Bool("cold_start", list.Metadata.ColdStart).
		Msg("campaign seeded")
	return list, nil
}

// CreateCampaign stores a new campaign for a group and seeds its
// recommended set with up to limit songs. Groups without members are
// rejected before anything is written.
func (s *Service) CreateCampaign(ctx context.Context, groupID int, name string, due time.Time, limit int) (models.Campaign, *models.RecommendationList, error) {
	ctx, _ = logging.EnsureRequestID(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Campaign{}, nil, fmt.Errorf("%w: name is empty", ErrInvalidCampaign)
	}

	// Nothing is stored for a group that could not be seeded
	members, err := s.store.GroupMembers(ctx, groupID)
	if err != nil {
		return models.Campaign{}, nil, err
	}
	if len(members) == 0 {
		return models.Campaign{}, nil, fmt.Errorf("group %d: %w", groupID, models.ErrEmptyGroup)
	}

	campaign, err := s.store.CreateCampaign(ctx, models.Campaign{
		GroupID: groupID,
		Name:    name,
		DueDate: due,
	})
	if err != nil {
		return models.Campaign{}, nil, err
	}

	logger := logging.Enrich(ctx, s.logger).Int("campaign_id", campaign.ID).Logger()
	logger.Info().Int("group_id", groupID).Msg("campaign created")

	list, err := s.SeedCampaign(ctx, campaign.ID, limit)
	if err != nil {
		return campaign, nil, err
	}
	return campaign, list, nil
}

// CampaignRecommendations returns a campaign's stored set in rank order.
func (s *Service) CampaignRecommendations(ctx context.Context, campaignID int) ([]models.CampaignRecommendation, error) {
	return s.store.CampaignRecommendations(ctx, campaignID)
}

// ShowCampaign returns a campaign with its stored set and member ratings.
func (s *Service) ShowCampaign(ctx context.Context, campaignID int) (*CampaignDetail, error) {
	campaign, err := s.store.Campaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	recs, err := s.CampaignRecommendations(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.store.CampaignRatings(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if recs == nil {
		recs = []models.CampaignRecommendation{}
	}
	if ratings == nil {
		ratings = []models.CampaignRating{}
	}
	return &CampaignDetail{Campaign: campaign, Recommendations: recs, Ratings: ratings}, nil
}

// RateSong records a user's rating of a catalog song, replacing any earlier
// rating, and returns the new rating version.
func (s *Service) RateSong(ctx context.Context, userID, songID, score int) (uint64, error) {
	if err := s.checkScore(score); err != nil {
		return 0, err
	}
	if _, err := s.store.User(ctx, userID); err != nil {
		return 0, err
	}
	if _, err := s.store.Song(ctx, songID); err != nil {
		return 0, err
	}

	version, err := s.store.PutRating(ctx, models.Rating{UserID: userID, SongID: songID, Score: score})
	if err != nil {
		return 0, err
	}

	logger := logging.Enrich(ctx, s.logger).Logger()
	logger.Debug().
		Int("user_id", userID).
		Int("song_id", songID).
		Int("score", score).
		Uint64("rating_version", version).
		Msg("song rated")
	return version, nil
}

// RateCampaignRecommendation records a member's rating of a song in the
// campaign's recommended set, replacing any earlier rating.
func (s *Service) RateCampaignRecommendation(ctx context.Context, campaignID, songID, userID, score int) error {
	if err := s.checkScore(score); err != nil {
		return err
	}

	campaign, err := s.store.Campaign(ctx, campaignID)
	if err != nil {
		return err
	}
	group, err := s.store.Group(ctx, campaign.GroupID)
	if err != nil {
		return err
	}
	if !containsInt(group.MemberIDs, userID) {
		return fmt.Errorf("%w: user %d in group %d", ErrNotMember, userID, group.ID)
	}

	recs, err := s.store.CampaignRecommendations(ctx, campaignID)
	if err != nil {
		return err
	}
	found := false
	for i := range recs {
		if recs[i].SongID == songID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: campaign %d song %d", ErrNotRecommended, campaignID, songID)
	}

	return s.store.PutCampaignRating(ctx, models.CampaignRating{
		CampaignID: campaignID,
		SongID:     songID,
		UserID:     userID,
		Score:      score,
	})
}

func (s *Service) campaignMembers(ctx context.Context, campaignID int) ([]models.User, error) {
	campaign, err := s.store.Campaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return s.store.GroupMembers(ctx, campaign.GroupID)
}

func (s *Service) checkScore(score int) error {
	if score < s.scale.Min || score > s.scale.Max {
		return fmt.Errorf("%w: score %d outside [%d, %d]", ErrInvalidRating, score, s.scale.Min, s.scale.Max)
	}
	return nil
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
