// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package validation provides struct validation using go-playground/validator v10.
//
// # Overview
//
// The package wraps a thread-safe singleton validator that knows the musical
// enumerations from the models package:
//
//   - instrument: value must be a recognized models.Instrument
//   - proficiency: value must be a recognized models.Proficiency
//   - genre: value must be a recognized models.Genre (use with dive on slices)
//
// Built-in tags (required, email, gte, lte, min, max, oneof) keep their usual
// meaning and are translated to short human-readable messages.
//
// # Usage
//
// Profile building validates raw user records before reading them:
//
//	if verr := validation.ValidateStruct(&user); verr != nil {
//	    return models.Profile{}, fmt.Errorf("%w: user %d: %v", models.ErrInvalidProfile, user.ID, verr)
//	}
//
// Configuration loading validates the unmarshaled config struct the same way,
// so a bad ENCORE_FUSION_ALPHA or a negative neighbor count is reported with
// the offending field name.
//
// # Error Handling
//
// ValidateStruct returns *RequestValidationError, which holds one
// ValidationError per failed field. Field, Tag, Param and Value expose the
// raw validator details; Error returns the translated message.
//
// # Thread Safety
//
// GetValidator initializes the validator exactly once via sync.Once. The
// returned *validator.Validate caches struct metadata and is safe for
// concurrent use.
package validation
