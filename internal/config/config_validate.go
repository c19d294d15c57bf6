// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package config

import (
	"fmt"

	"github.com/tomtom215/encore/internal/models"
	"github.com/tomtom215/encore/internal/validation"
)

// Validate checks struct-level constraints first, then the cross-field
// rules the engine enforces (such as weights summing to one). Every
// failure wraps models.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfiguration, verr.Error())
	}

	return c.EngineConfig().Validate()
}
