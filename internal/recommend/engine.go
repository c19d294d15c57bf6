// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/encore/internal/logging"
	"github.com/tomtom215/encore/internal/metrics"
	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/recommend/algorithms"
)

// Engine produces hybrid recommendations for a single user or a group.
// It holds no per-request state and is safe for concurrent use; the
// optional neighbor cache is the only structure shared between calls.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	content   *algorithms.ContentScorer
	neighbors *neighborCache
	now       func() time.Time
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithClock overrides the clock used for metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithoutNeighborCache disables neighbor memoization regardless of
// Config.Neighbors.CacheSize.
func WithoutNeighborCache() Option {
	return func(e *Engine) {
		e.neighbors = nil
	}
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig.
// The configuration is copied; later changes to cfg have no effect.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	e := &Engine{
		config: cfg,
		logger: logger,
		content: algorithms.NewContentScorer(algorithms.ContentConfig{
			GenreWeight:       cfg.Weights.Genre,
			InstrumentWeight:  cfg.Weights.Instrument,
			ProficiencyWeight: cfg.Weights.Proficiency,
		}),
		neighbors: newNeighborCache(cfg.Neighbors.CacheSize),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// target describes who a scoring pass is for.
type target struct {
	kind    string // metrics.TargetUser or metrics.TargetCampaign
	label   string // "user:3", "group:1,2,4"
	userIDs []int
}

// RecommendForUser ranks snap's songs for one user. A positive limit caps
// the list length; limit <= 0 returns every candidate.
//
// An out-of-range instrument, proficiency or genre fails with
// models.ErrInvalidProfile. Missing ratings, neighbors or songs never fail;
// they produce a content-only or empty list.
//
//nolint:gocritic // hugeParam: User and Snapshot are read-only inputs
func (e *Engine) RecommendForUser(ctx context.Context, user models.User, snap Snapshot, limit int) (*models.RecommendationList, error) {
	start := time.Now()

	profile, err := BuildUserProfile(user)
	if err != nil {
		e.recordFailure(metrics.TargetUser, start, err)
		return nil, err
	}

	t := target{
		kind:    metrics.TargetUser,
		label:   "user:" + strconv.Itoa(user.ID),
		userIDs: []int{user.ID},
	}
	return e.recommend(ctx, t, profile, snap, limit, start), nil
}

// RecommendForCampaign ranks snap's songs for a group preparing a campaign.
// Zero members fail with models.ErrEmptyGroup; a malformed member fails
// with models.ErrInvalidProfile.
//
//nolint:gocritic // hugeParam: Snapshot is a read-only input
func (e *Engine) RecommendForCampaign(ctx context.Context, members []models.User, snap Snapshot, limit int) (*models.RecommendationList, error) {
	start := time.Now()

	profile, err := BuildGroupProfile(members)
	if err != nil {
		e.recordFailure(metrics.TargetCampaign, start, err)
		return nil, err
	}

	ids := make([]int, len(members))
	for i := range members {
		ids[i] = members[i].ID
	}
	ids = uniqueSorted(ids)

	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = strconv.Itoa(id)
	}

	t := target{
		kind:    metrics.TargetCampaign,
		label:   "group:" + strings.Join(labels, ","),
		userIDs: ids,
	}
	return e.recommend(ctx, t, profile, snap, limit, start), nil
}

// recommend runs the content and collaborative passes concurrently and
// fuses the results. Both passes are pure and cannot fail.
//
//nolint:gocritic // hugeParam: Snapshot is a read-only input
func (e *Engine) recommend(ctx context.Context, t target, profile models.Profile, snap Snapshot, limit int, start time.Time) *models.RecommendationList {
	ctx, requestID := logging.EnsureRequestID(ctx)
	logger := logging.Enrich(ctx, e.logger).Str("target", t.label).Logger()
	logger.Debug().Int("songs", len(snap.Songs)).Int("ratings", len(snap.Ratings)).Msg("processing recommendation request")

	index := algorithms.NewRatingIndex(snap.Ratings)
	songs := e.candidateSongs(snap.Songs, index, t.userIDs)

	songIDs := make([]int, len(songs))
	for i := range songs {
		songIDs[i] = songs[i].ID
	}

	var (
		contentScores []float64
		invalid       []int
		collaborative map[int]float64
	)

	var g errgroup.Group
	g.Go(func() error {
		contentScores, invalid = e.content.ScoreAll(profile, songs)
		return nil
	})
	g.Go(func() error {
		collaborative = e.predict(t, index, songIDs, snap.Version)
		return nil
	})
	_ = g.Wait() // neither pass returns an error

	candidates := make([]models.Candidate, len(songs))
	for i := range songs {
		candidates[i] = models.Candidate{
			Song:         songs[i],
			ContentScore: contentScores[i],
		}
		if score, ok := collaborative[songs[i].ID]; ok {
			candidates[i].CollaborativeScore = floatPtr(score)
		}
	}

	ranked := Fuse(candidates, e.config.FusionAlpha, 0)
	total := len(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	invalid = uniqueSorted(invalid)
	if len(invalid) > 0 {
		logger.Warn().Ints("song_ids", invalid).Msg("songs without requirements scored as zero content match")
	}

	coldStart := true
	for _, id := range t.userIDs {
		if index.RatingCount(id) > 0 {
			coldStart = false
			break
		}
	}
	latency := time.Since(start)

	metrics.RecordRecommendation(metrics.Outcome{
		Target:       t.kind,
		Duration:     latency,
		Candidates:   total,
		ColdStart:    coldStart,
		InvalidSongs: len(invalid),
	})

	logger.Debug().
		Int("candidates", total).
		Int("returned", len(ranked)).
		Bool("cold_start", coldStart).
		Int64("latency_ms", latency.Milliseconds()).
		Msg("recommendation complete")

	return &models.RecommendationList{
		Items:           ranked,
		TotalCandidates: total,
		Metadata: models.ListMetadata{
			RequestID:    requestID,
			Target:       t.label,
			ColdStart:    coldStart,
			InvalidSongs: invalid,
			LatencyMS:    latency.Milliseconds(),
			Timestamp:    e.now(),
		},
	}
}

// candidateSongs filters out songs any target user has already rated when
// ExcludeRated is set.
func (e *Engine) candidateSongs(songs []models.Song, index *algorithms.RatingIndex, userIDs []int) []models.Song {
	if !e.config.ExcludeRated {
		return songs
	}

	out := make([]models.Song, 0, len(songs))
	for i := range songs {
		rated := false
		for _, userID := range userIDs {
			if index.HasRated(userID, songs[i].ID) {
				rated = true
				break
			}
		}
		if !rated {
			out = append(out, songs[i])
		}
	}
	return out
}

// predict builds a collaborative scorer for this pass and predicts songIDs
// for the target.
func (e *Engine) predict(t target, index *algorithms.RatingIndex, songIDs []int, version uint64) map[int]float64 {
	knn := algorithms.NewCollaborative(algorithms.KNNConfig{
		K:         e.config.Neighbors.K,
		RatingMin: e.config.Ratings.Min,
		RatingMax: e.config.Ratings.Max,
	}, index, e.neighbors.forVersion(version))

	if t.kind == metrics.TargetUser {
		return knn.Predict(t.userIDs[0], songIDs)
	}
	return knn.PredictGroup(t.userIDs, songIDs)
}

func (e *Engine) recordFailure(kind string, start time.Time, err error) {
	metrics.RecordRecommendation(metrics.Outcome{
		Target:   kind,
		Duration: time.Since(start),
		Err:      err,
	})
	e.logger.Debug().Err(err).Str("target_kind", kind).Msg("recommendation rejected")
}

// uniqueSorted returns ids sorted ascending without duplicates.
func uniqueSorted(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	sort.Ints(ids)
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
