// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/ojakgyo/internal/middleware"
	"github.com/tomtom215/ojakgyo/internal/recommend"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: course and route endpoints
//   - handlers_district.go: weather, district summary and station endpoints
//   - handlers_health.go: health endpoint
type Handler struct {
	engine         *recommend.Engine
	store          Pinger
	perfMon        *middleware.PerformanceMonitor
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates the API handler. store and perfMon may be nil; a zero
// requestTimeout leaves requests bounded only by the server timeouts.
func NewHandler(engine *recommend.Engine, store Pinger, perfMon *middleware.PerformanceMonitor, requestTimeout time.Duration) *Handler {
	return &Handler{
		engine:         engine,
		store:          store,
		perfMon:        perfMon,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}

// PerformanceMonitor returns the monitor mounted on the API routes, or nil.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// requestContext bounds a recommendation request by the configured timeout.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}
