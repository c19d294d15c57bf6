// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Errorf("expected correlation ID length 8, got %d", len(id))
	}

	if other := GenerateCorrelationID(); id == other {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id := GenerateRequestID()
	if len(id) != 36 {
		t.Errorf("expected request ID length 36, got %d", len(id))
	}
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("CorrelationIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("CorrelationIDFromContext() = %q, want abc12345", got)
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("generated correlation ID = %q, want 8 characters", got)
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}
}

func TestEnsureRequestID(t *testing.T) {
	t.Parallel()

	t.Run("keeps existing", func(t *testing.T) {
		t.Parallel()
		ctx := ContextWithRequestID(context.Background(), "existing")
		out, id := EnsureRequestID(ctx)
		if id != "existing" {
			t.Errorf("EnsureRequestID() id = %q, want existing", id)
		}
		if got := RequestIDFromContext(out); got != "existing" {
			t.Errorf("context request ID = %q, want existing", got)
		}
	})

	t.Run("generates missing", func(t *testing.T) {
		t.Parallel()
		out, id := EnsureRequestID(context.Background())
		if len(id) != 36 {
			t.Errorf("EnsureRequestID() id length = %d, want 36", len(id))
		}
		if got := RequestIDFromContext(out); got != id {
			t.Errorf("context request ID = %q, want %q", got, id)
		}
	})
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(Config{Level: "info", Output: &bytes.Buffer{}})

	ctx := ContextWithCorrelationID(context.Background(), "corr-123")
	ctx = ContextWithRequestID(ctx, "req-456")

	Ctx(ctx).Info().Msg("context test")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"corr-123"`) {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-456"`) {
		t.Errorf("expected request_id in output: %s", output)
	}
}

func TestCtx_NoIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(Config{Level: "info", Output: &bytes.Buffer{}})

	Ctx(context.Background()).Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "correlation_id") || strings.Contains(output, "request_id") {
		t.Errorf("expected no ID fields in output: %s", output)
	}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	component := zerolog.New(&buf).With().Str("component", "recommend").Logger()

	ctx := ContextWithRequestID(context.Background(), "req-789")
	logger := Enrich(ctx, component).Int("campaign_id", 4).Logger()
	logger.Warn().Msg("enriched")

	output := buf.String()
	for _, want := range []string{`"component":"recommend"`, `"request_id":"req-789"`, `"campaign_id":4`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}
