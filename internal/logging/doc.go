// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

// Package logging provides centralized zerolog-based structured logging for Encore.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output for machine consumption, console output for development
//   - Context-aware logging with correlation and request ID propagation
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	storeLogger := logging.WithComponent("store")
//	logging.Ctx(ctx).Debug().Str("command", path).Msg("running command")
//
// # Configuration
//
// The logging section of the Encore configuration maps onto Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error, fatal, panic, disabled (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Context Propagation
//
// Each CLI invocation carries a short correlation ID; each recommendation
// request carries a full UUID request ID. Ctx and Enrich attach both to a
// logger when present:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	ctx, requestID := logging.EnsureRequestID(ctx)
//	logger := logging.Enrich(ctx, componentLogger).Logger()
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex; Init may be called while other
// goroutines log. Loggers returned by WithComponent keep the configuration
// they were derived from.
package logging
