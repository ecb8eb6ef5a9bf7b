// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package middleware

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Endpoint   string
	Method     string
	DurationMS int64
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats aggregates the recent requests of one endpoint.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	AvgDuration  float64 `json:"avg_ms"`
	P50Duration  int64   `json:"p50_ms"`
	P95Duration  int64   `json:"p95_ms"`
	MaxDuration  int64   `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests for the health
// endpoint and logs requests slower than a threshold.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	metrics    []RequestMetrics
	maxMetrics int
	slow       time.Duration
	logger     zerolog.Logger
}

// NewPerformanceMonitor keeps the last maxMetrics requests and warns about
// requests slower than slow (disabled when zero).
func NewPerformanceMonitor(maxMetrics int, slow time.Duration, logger zerolog.Logger) *PerformanceMonitor {
	if maxMetrics <= 0 {
		maxMetrics = 1000
	}
	return &PerformanceMonitor{
		metrics:    make([]RequestMetrics, 0, maxMetrics),
		maxMetrics: maxMetrics,
		slow:       slow,
		logger:     logger,
	}
}

// RecordRequest adds a request to the window, evicting the oldest.
func (pm *PerformanceMonitor) RecordRequest(m RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.metrics) >= pm.maxMetrics {
		pm.metrics = append(pm.metrics[:0], pm.metrics[1:]...)
	}
	pm.metrics = append(pm.metrics, m)
}

// Stats returns per-endpoint statistics ordered by request count, busiest first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]int64)
	for _, m := range pm.metrics {
		key := m.Method + " " + m.Endpoint
		byEndpoint[key] = append(byEndpoint[key], m.DurationMS)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, durations := range byEndpoint {
		slices.Sort(durations)

		var sum int64
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			AvgDuration:  float64(sum) / float64(len(durations)),
			P50Duration:  percentile(durations, 0.50),
			P95Duration:  percentile(durations, 0.95),
			MaxDuration:  durations[len(durations)-1],
		})
	}

	slices.SortFunc(stats, func(a, b EndpointStats) int {
		if a.RequestCount != b.RequestCount {
			if a.RequestCount > b.RequestCount {
				return -1
			}
			return 1
		}
		if a.Endpoint < b.Endpoint {
			return -1
		}
		if a.Endpoint > b.Endpoint {
			return 1
		}
		return 0
	})
	return stats
}

// Middleware records every request passing through it. It must run inside
// the chi router so the route pattern is known.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		elapsed := time.Since(start)
		endpoint := routePattern(r)
		pm.RecordRequest(RequestMetrics{
			Endpoint:   endpoint,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: wrapper.statusCode,
			Timestamp:  start,
		})

		if pm.slow > 0 && elapsed > pm.slow {
			pm.logger.Warn().
				Str("method", r.Method).
				Str("endpoint", endpoint).
				Dur("duration", elapsed).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from an ascending slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
