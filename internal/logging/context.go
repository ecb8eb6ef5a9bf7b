// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
)

// GenerateRequestID returns a new UUID request identifier.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateCorrelationID returns a short correlation identifier (first 8 chars of a UUID).
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// ContextWithRequestID returns a copy of ctx carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithNewCorrelationID returns a copy of ctx carrying a fresh correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return context.WithValue(ctx, correlationIDKey, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// Enrich adds the request and correlation IDs found in ctx to a logger context.
//
//	logger := logging.Enrich(ctx, base.With()).Str("district", d).Logger()
//
//nolint:gocritic // zerolog.Context is designed to be passed by value
func Enrich(ctx context.Context, lc zerolog.Context) zerolog.Context {
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc
}

// Ctx returns the global logger enriched with the IDs carried by ctx. The
// pointer lets callers chain level methods directly:
//
//	logging.Ctx(ctx).Error().Err(err).Msg("request failed")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Enrich(ctx, With()).Logger()
	return &l
}
