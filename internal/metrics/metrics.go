// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ojakgyo_db_query_duration_seconds",
			Help:    "Duration of place store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_db_query_errors_total",
			Help: "Total number of place store query errors",
		},
		[]string{"driver", "operation"},
	)

	// Catalog Metrics
	CatalogPlaces = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ojakgyo_catalog_places",
			Help: "Number of records loaded per collection",
		},
		[]string{"collection"},
	)

	CatalogSkippedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_catalog_skipped_rows_total",
			Help: "Rows dropped during catalog construction",
		},
		[]string{"collection"},
	)

	CatalogMissingCollections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_catalog_missing_collections_total",
			Help: "Collections the row source did not have, loaded as empty",
		},
		[]string{"collection"},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ojakgyo_catalog_load_duration_seconds",
			Help:    "Time to load and preprocess all collections",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ojakgyo_recommend_duration_seconds",
			Help:    "Duration of recommendation operations in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	RecommendRelaxations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_recommend_relaxations_total",
			Help: "Cascade stages that relaxed because they emptied the candidate set",
		},
		[]string{"kind", "stage"},
	)

	RecommendEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_recommend_empty_results_total",
			Help: "Selections that produced no candidates",
		},
		[]string{"kind"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_recommend_errors_total",
			Help: "Internal errors converted to empty or error results",
		},
		[]string{"operation"},
	)

	// Weather Metrics
	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_weather_lookups_total",
			Help: "Weather lookups by outcome",
		},
		[]string{"outcome"}, // "hit", "cached", "missing", "error", "rejected"
	)

	WeatherCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_weather_cache_lookups_total",
			Help: "Weather reading cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	WeatherAdvisories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_weather_advisories_total",
			Help: "Advisories issued by status",
		},
		[]string{"status", "outdoor"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ojakgyo_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ojakgyo_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ojakgyo_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ojakgyo_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a store query duration and, when err is non-nil, an error.
func RecordDBQuery(driver, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// RecordRecommend records the duration of an engine operation.
func RecordRecommend(operation string, duration time.Duration) {
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRelaxations counts each relaxed cascade stage for a place kind.
func RecordRelaxations(kind string, stages []string) {
	for _, stage := range stages {
		RecommendRelaxations.WithLabelValues(kind, stage).Inc()
	}
}

// RecordSelection counts empty selections for a place kind.
func RecordSelection(kind string, size int) {
	if size == 0 {
		RecommendEmptyResults.WithLabelValues(kind).Inc()
	}
}

// RecordAdvisory counts an issued weather advisory.
func RecordAdvisory(status string, outdoor bool) {
	label := "false"
	if outdoor {
		label = "true"
	}
	WeatherAdvisories.WithLabelValues(status, label).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
