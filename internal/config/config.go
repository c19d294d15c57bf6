// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package config

import (
	"os"

	"github.com/tomtom215/encore/internal/logging"
	"github.com/tomtom215/encore/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults matching recommend.DefaultConfig
//  2. Config File: Optional YAML file (encore.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load and safe for concurrent read access.
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// RecommendConfig holds the scoring knobs of the recommendation engine.
//
// Environment Variables:
//   - ENCORE_CONTENT_WEIGHT_GENRE: genre sub-score weight (default: 0.4)
//   - ENCORE_CONTENT_WEIGHT_INSTRUMENT: instrument sub-score weight (default: 0.3)
//   - ENCORE_CONTENT_WEIGHT_PROFICIENCY: proficiency sub-score weight (default: 0.3)
//   - ENCORE_FUSION_ALPHA: content share of the fused score (default: 0.5)
//   - ENCORE_NEIGHBOR_K: neighbors consulted per song (default: 20)
//   - ENCORE_NEIGHBOR_CACHE_SIZE: memoized neighbor lists, 0 disables (default: 1024)
//   - ENCORE_RATING_MIN / ENCORE_RATING_MAX: rating scale (default: 1..5)
//   - ENCORE_EXCLUDE_RATED: drop songs the target already rated (default: true)
//   - ENCORE_DEFAULT_LIMIT: list length when none is requested (default: 10)
type RecommendConfig struct {
	ContentWeightGenre       float64 `koanf:"content_weight_genre" validate:"gte=0,lte=1"`
	ContentWeightInstrument  float64 `koanf:"content_weight_instrument" validate:"gte=0,lte=1"`
	ContentWeightProficiency float64 `koanf:"content_weight_proficiency" validate:"gte=0,lte=1"`
	FusionAlpha              float64 `koanf:"fusion_alpha" validate:"gte=0,lte=1"`
	NeighborK                int     `koanf:"neighbor_k" validate:"gte=1"`
	NeighborCacheSize        int     `koanf:"neighbor_cache_size" validate:"gte=0"`
	RatingMin                int     `koanf:"rating_min"`
	RatingMax                int     `koanf:"rating_max" validate:"gtfield=RatingMin"`
	ExcludeRated             bool    `koanf:"exclude_rated"`
	DefaultLimit             int     `koanf:"default_limit" validate:"gte=0"`
}

// StoreConfig holds persistence settings.
//
// Environment Variables:
//   - ENCORE_DATA_DIR: badger data directory (default: ./data)
//   - ENCORE_STORE_IN_MEMORY: keep everything in memory (default: false)
//   - ENCORE_STORE_SYNC_WRITES: fsync every write (default: false)
type StoreConfig struct {
	Path       string `koanf:"path" validate:"required_unless=InMemory true"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error, fatal, panic, disabled (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Recommend: RecommendConfig{
			ContentWeightGenre:       engine.Weights.Genre,
			ContentWeightInstrument:  engine.Weights.Instrument,
			ContentWeightProficiency: engine.Weights.Proficiency,
			FusionAlpha:              engine.FusionAlpha,
			NeighborK:                engine.Neighbors.K,
			NeighborCacheSize:        engine.Neighbors.CacheSize,
			RatingMin:                engine.Ratings.Min,
			RatingMax:                engine.Ratings.Max,
			ExcludeRated:             engine.ExcludeRated,
			DefaultLimit:             10,
		},
		Store: StoreConfig{
			Path: "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
	}
}

// EngineConfig converts the recommend section to an engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Weights: recommend.ContentWeights{
			Genre:       r.ContentWeightGenre,
			Instrument:  r.ContentWeightInstrument,
			Proficiency: r.ContentWeightProficiency,
		},
		FusionAlpha: r.FusionAlpha,
		Neighbors: recommend.NeighborConfig{
			K:         r.NeighborK,
			CacheSize: r.NeighborCacheSize,
		},
		Ratings: recommend.RatingScale{
			Min: r.RatingMin,
			Max: r.RatingMax,
		},
		ExcludeRated: r.ExcludeRated,
	}
}

// LoggerConfig converts the logging section for logging.Init. Output goes
// to stderr so command output on stdout stays machine-readable.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
		Output: os.Stderr,
	}
}
