// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/middleware"
	"github.com/tomtom215/ojakgyo/internal/recommend"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status            string                     `json:"status"`
	DatabaseConnected bool                       `json:"database_connected"`
	WeatherBreaker    string                     `json:"weather_breaker"`
	WeatherCache      *weather.CacheStats        `json:"weather_cache,omitempty"`
	Catalog           dataset.Counts             `json:"catalog"`
	CatalogLoadedAt   time.Time                  `json:"catalog_loaded_at"`
	Engine            recommend.Stats            `json:"engine"`
	Uptime            float64                    `json:"uptime_seconds"`
	Endpoints         []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// Health reports store connectivity, catalog sizes and request statistics.
// The catalog is served from memory, so an unreachable store only degrades
// the status.
//
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	dbConnected := h.store == nil || h.store.Ping(r.Context()) == nil

	catalog := h.engine.Catalog()
	breaker := h.engine.WeatherState()

	status := "healthy"
	if !dbConnected || breaker == "open" {
		status = "degraded"
	}

	health := HealthStatus{
		Status:            status,
		DatabaseConnected: dbConnected,
		WeatherBreaker:    breaker,
		WeatherCache:      h.engine.WeatherCacheStats(),
		Catalog:           catalog.Counts(),
		CatalogLoadedAt:   catalog.LoadedAt(),
		Engine:            h.engine.Stats(),
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.perfMon != nil {
		health.Endpoints = h.perfMon.Stats()
	}

	rw.Success(health)
}
