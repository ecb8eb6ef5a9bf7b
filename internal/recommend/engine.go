// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// DefaultStationLimit is the number of stations listed per district.
const DefaultStationLimit = 5

// Engine selects places from a Catalog. The catalog is shared read-only and
// every request works on its own slices, so an Engine is safe for concurrent
// use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	strategy Strategy

	catalog  *dataset.Catalog
	weather  *weather.Lookup
	stations dataset.StationSource

	requestCount atomic.Int64
	errorCount   atomic.Int64
	emptyCount   atomic.Int64
}

// Stats are the engine's request counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
	Empty    int64 `json:"empty_selections"`
}

// NewEngine creates a new recommendation engine over catalog. A nil lookup
// reads weather from the catalog itself with default thresholds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog *dataset.Catalog, lookup *weather.Lookup, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("nil catalog")
	}

	strategy, err := NewStrategy(cfg.Strategy, cfg.Preferences)
	if err != nil {
		return nil, err
	}

	if lookup == nil {
		lookup = weather.NewLookup(catalog, weather.NewAdvisor(weather.DefaultThresholds()),
			weather.DefaultBreakerSettings(), 0, logger)
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		strategy: strategy,
		catalog:  catalog,
		weather:  lookup,
		stations: catalog,
	}

	e.logger.Info().
		Str("strategy", strategy.Name()).
		Str("preferences", cfg.Preferences.Name).
		Int("limit", cfg.Limit).
		Msg("recommendation engine ready")

	return e, nil
}

// SetStationSource replaces the catalog as the source of station ratings.
func (e *Engine) SetStationSource(s dataset.StationSource) {
	if s != nil {
		e.stations = s
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Catalog returns the catalog the engine selects from.
func (e *Engine) Catalog() *dataset.Catalog {
	return e.catalog
}

// Stats returns the request counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
		Empty:    e.emptyCount.Load(),
	}
}

// WeatherRecommendation returns the weather advisory of district. It never
// fails; missing or unavailable data yields the default advisory.
func (e *Engine) WeatherRecommendation(ctx context.Context, district string) weather.Advisory {
	return e.weather.Advisory(ctx, district)
}

// WeatherState returns the state of the weather lookup circuit breaker.
func (e *Engine) WeatherState() string {
	return e.weather.State()
}

// WeatherCacheStats returns the reading cache counters, or nil when the
// lookup does not cache.
func (e *Engine) WeatherCacheStats() *weather.CacheStats {
	if s, ok := e.weather.CacheStats(); ok {
		return &s
	}
	return nil
}

// DistrictSummary is the latest weather reading of a district with the
// number of places whose address mentions it.
type DistrictSummary struct {
	District string           `json:"district"`
	Weather  *weather.Reading `json:"weather"`
	Stats    dataset.Counts   `json:"stats"`
}

// DistrictSummary returns the summary of district. The weather is nil when
// no reading is available.
func (e *Engine) DistrictSummary(ctx context.Context, district string) DistrictSummary {
	reading, err := e.weather.Reading(ctx, district)
	if err != nil {
		e.requestLogger(ctx).Warn().Err(err).Str("district", district).Msg("weather reading unavailable")
	}
	return DistrictSummary{
		District: district,
		Weather:  reading,
		Stats:    e.catalog.CountsByAddress(district),
	}
}

// Stations returns the best rated stations of district.
func (e *Engine) Stations(ctx context.Context, district string) ([]dataset.Station, error) {
	stations, err := e.stations.Stations(ctx, district, DefaultStationLimit)
	if err != nil {
		return nil, fmt.Errorf("list stations of %s: %w", district, err)
	}
	return stations, nil
}

// requestLogger returns the engine logger with the request IDs of ctx.
func (e *Engine) requestLogger(ctx context.Context) *zerolog.Logger {
	l := logging.Enrich(ctx, e.logger.With()).Logger()
	return &l
}

// guard counts a selection request, times it, and turns a panic into an
// empty result. Use as: defer e.guard(ctx, op, &out)().
func (e *Engine) guard(ctx context.Context, op string, out *[]ScoredPlace) func() {
	start := time.Now()
	e.requestCount.Add(1)
	return func() {
		if r := recover(); r != nil {
			e.errorCount.Add(1)
			metrics.RecommendErrors.WithLabelValues(op).Inc()
			e.requestLogger(ctx).Error().Interface("panic", r).Str("operation", op).Msg("selection failed")
			*out = []ScoredPlace{}
		}
		if *out == nil {
			*out = []ScoredPlace{}
		}
		metrics.RecordRecommend(op, time.Since(start))
	}
}

// record logs and counts the relaxations and result size of a selection.
func (e *Engine) record(ctx context.Context, op string, relaxed []string, size int) {
	metrics.RecordRelaxations(op, relaxed)
	metrics.RecordSelection(op, size)
	if size == 0 {
		e.emptyCount.Add(1)
	}
	if len(relaxed) > 0 {
		e.requestLogger(ctx).Debug().Str("operation", op).Strs("relaxed", relaxed).Int("size", size).Msg("cascade relaxed")
	}
}
