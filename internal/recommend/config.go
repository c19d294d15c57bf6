// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/encore/internal/models"
)

// weightSumTolerance absorbs floating-point error when checking that the
// content weights sum to one.
const weightSumTolerance = 1e-9

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the contribution of each content sub-score.
	// Unlike the fusion alpha, weights are not normalized at runtime and
	// must sum to 1.0.
	Weights ContentWeights `json:"weights"`

	// FusionAlpha is the share of the content score in the fused score.
	// 1.0 = pure content, 0.0 = pure collaborative (when a signal exists).
	// Default: 0.5.
	FusionAlpha float64 `json:"fusion_alpha"`

	// Neighbors contains parameters for the collaborative scorer.
	Neighbors NeighborConfig `json:"neighbors"`

	// Ratings describes the rating scale used to normalize predictions.
	Ratings RatingScale `json:"ratings"`

	// ExcludeRated drops songs already rated by the target (any member for
	// a group) from the candidate set.
	// Default: true.
	ExcludeRated bool `json:"exclude_rated"`
}

// ContentWeights defines the relative contribution of each content sub-score.
type ContentWeights struct {
	// Genre is the weight of the genre match.
	// Default: 0.4.
	Genre float64 `json:"genre"`

	// Instrument is the weight of the instrument match.
	// Default: 0.3.
	Instrument float64 `json:"instrument"`

	// Proficiency is the weight of the proficiency closeness.
	// Default: 0.3.
	Proficiency float64 `json:"proficiency"`
}

// Sum returns the total of all weights.
func (w ContentWeights) Sum() float64 {
	return w.Genre + w.Instrument + w.Proficiency
}

// ToMap returns the weights as a string-keyed map.
func (w ContentWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"genre":       w.Genre,
		"instrument":  w.Instrument,
		"proficiency": w.Proficiency,
	}
}

// NeighborConfig contains parameters for user-KNN.
type NeighborConfig struct {
	// K is the number of most similar neighbors consulted per song.
	// Default: 20.
	K int `json:"k"`

	// CacheSize is the number of users whose neighbor lists are memoized.
	// Zero disables the neighbor cache.
	// Default: 1024.
	CacheSize int `json:"cache_size"`
}

// RatingScale is the inclusive range of rating scores.
type RatingScale struct {
	// Min is the lowest possible score.
	// Default: 1.
	Min int `json:"min"`

	// Max is the highest possible score.
	// Default: 5.
	Max int `json:"max"`
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ContentWeights{
			Genre:       0.4,
			Instrument:  0.3,
			Proficiency: 0.3,
		},
		FusionAlpha: 0.5,
		Neighbors: NeighborConfig{
			K:         20,
			CacheSize: 1024,
		},
		Ratings: RatingScale{
			Min: 1,
			Max: 5,
		},
		ExcludeRated: true,
	}
}

// Validate checks the configuration for errors. Every failure wraps
// models.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	weights := c.Weights.ToMap()
	for _, name := range []string{"genre", "instrument", "proficiency"} {
		if w := weights[name]; math.IsNaN(w) || w < 0 || w > 1 {
			return invalidConfig("weights.%s must be in [0, 1], got %f", name, w)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return invalidConfig("weights must sum to 1.0, got %f", sum)
	}

	if math.IsNaN(c.FusionAlpha) || c.FusionAlpha < 0 || c.FusionAlpha > 1 {
		return invalidConfig("fusion_alpha must be in [0, 1], got %f", c.FusionAlpha)
	}

	if c.Neighbors.K < 1 {
		return invalidConfig("neighbors.k must be positive, got %d", c.Neighbors.K)
	}
	if c.Neighbors.CacheSize < 0 {
		return invalidConfig("neighbors.cache_size must be non-negative, got %d", c.Neighbors.CacheSize)
	}

	if c.Ratings.Max <= c.Ratings.Min {
		return invalidConfig("ratings.max must be > ratings.min, got %d <= %d", c.Ratings.Max, c.Ratings.Min)
	}

	return nil
}

func invalidConfig(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}
