// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

/*
Package config provides centralized configuration management for Encore.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:

 1. Struct defaults (providers/structs)
 2. YAML file (providers/file + parsers/yaml), from --config, CONFIG_PATH,
    encore.yaml or /etc/encore/encore.yaml
 3. Environment variables (providers/env) through an explicit mapping table;
    unmapped variables are ignored

# Configuration Structure

  - RecommendConfig: content weights, fusion alpha, neighbor count and
    cache size, rating scale, rated-song exclusion, default list length
  - StoreConfig: badger data directory, in-memory mode, sync writes
  - LoggingConfig: level, format, caller

# Environment Variables

Recommendation:
  - ENCORE_CONTENT_WEIGHT_GENRE (default: 0.4)
  - ENCORE_CONTENT_WEIGHT_INSTRUMENT (default: 0.3)
  - ENCORE_CONTENT_WEIGHT_PROFICIENCY (default: 0.3)
  - ENCORE_FUSION_ALPHA (default: 0.5)
  - ENCORE_NEIGHBOR_K (default: 20)
  - ENCORE_NEIGHBOR_CACHE_SIZE (default: 1024)
  - ENCORE_RATING_MIN, ENCORE_RATING_MAX (default: 1, 5)
  - ENCORE_EXCLUDE_RATED (default: true)
  - ENCORE_DEFAULT_LIMIT (default: 10)

Store:
  - ENCORE_DATA_DIR (default: ./data)
  - ENCORE_STORE_IN_MEMORY (default: false)
  - ENCORE_STORE_SYNC_WRITES (default: false)

Logging:
  - LOG_LEVEL (default: info)
  - LOG_FORMAT (default: json)
  - LOG_CALLER (default: false)

# Validation

Validate runs go-playground/validator struct tags first and then the
engine's own checks, so a configuration that loads is one NewEngine
accepts. Failures wrap models.ErrInvalidConfiguration.

# Example

	cfg, err := config.Load(configPath)
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggerConfig())
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
*/
package config
