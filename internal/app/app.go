// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

// Package app assembles the store, catalog, weather lookup and engine from
// configuration. Both binaries start from Open.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ojakgyo/internal/config"
	"github.com/tomtom215/ojakgyo/internal/database"
	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/recommend"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// DefaultSeed makes generated demo data identical across restarts.
const DefaultSeed int64 = 20240601

// Store is a row source that also serves live weather and station queries.
type Store interface {
	dataset.RowSource
	dataset.StationSource
	weather.Source
	Ping(ctx context.Context) error
	Close() error
}

// App is an opened store with the engine built over its catalog.
type App struct {
	Config  *config.Config
	Store   Store
	DB      *database.DB // nil unless the driver is duckdb
	Catalog *dataset.Catalog
	Engine  *recommend.Engine
}

// Open connects the configured store, applies the CSV import and mock data
// settings, loads the catalog and builds the engine. Weather and stations
// are queried from the store, readings through a short TTL cache; places
// are served from the catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	engineCfg, err := EngineConfig(cfg.Recommend)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	switch cfg.Database.Driver {
	case "postgres":
		pg, err := database.NewPostgresSource(ctx, cfg.Database.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		a.Store = pg
	default:
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.DB, a.Store = db, db
		if err := Bootstrap(ctx, db, cfg.Database, logger); err != nil {
			return nil, errors.Join(err, db.Close())
		}
	}

	a.Catalog, err = dataset.Load(ctx, a.Store, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("load catalog: %w", err), a.Store.Close())
	}

	lookup := weather.NewLookup(a.Store, weather.NewAdvisor(WeatherThresholds(cfg.Weather)),
		BreakerSettings(cfg.Weather.Breaker), cfg.Weather.LookupTimeout, logger)
	lookup.EnableCache(cfg.Weather.CacheTTL)

	a.Engine, err = recommend.NewEngine(engineCfg, a.Catalog, lookup, logger)
	if err != nil {
		return nil, errors.Join(err, a.Store.Close())
	}
	a.Engine.SetStationSource(a.Store)

	return a, nil
}

// Close closes the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Bootstrap imports CSV files from cfg.ImportDir and seeds empty tables when
// cfg.SeedMockData is set. Import runs first so real data is never mixed
// with generated rows.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Bootstrap(ctx context.Context, db *database.DB, cfg config.DatabaseConfig, logger zerolog.Logger) error {
	if cfg.ImportDir != "" {
		results, err := db.ImportCSV(ctx, cfg.ImportDir)
		if err != nil {
			return fmt.Errorf("import %s: %w", cfg.ImportDir, err)
		}
		for _, r := range results {
			logger.Info().Str("collection", r.Collection).Str("file", r.File).Int64("rows", r.Rows).Msg("CSV imported")
		}
	}

	if cfg.SeedMockData {
		stats, err := db.SeedMockData(ctx, cfg.SeedPerDistrict, DefaultSeed)
		if err != nil {
			return fmt.Errorf("seed mock data: %w", err)
		}
		for collection, n := range stats {
			logger.Info().Str("collection", collection).Int("rows", n).Msg("Mock data seeded")
		}
	}
	return nil
}

// EngineConfig converts the recommend config section into an engine config.
func EngineConfig(cfg config.RecommendConfig) (*recommend.Config, error) {
	prefs, err := recommend.PreferenceTableByName(cfg.PreferenceTable)
	if err != nil {
		return nil, err
	}

	ec := recommend.DefaultConfig()
	ec.Limit = cfg.Limit
	ec.Strategy = cfg.Strategy
	ec.Preferences = prefs
	ec.StationMinMatches = cfg.StationMinMatches
	ec.IndoorMinMatches = cfg.IndoorMinMatches
	ec.CafeDistanceWeight = cfg.CafeDistanceWeight

	t := cfg.Thresholds
	ec.RestaurantDistrict = recommend.Thresholds{Primary: t.RestaurantDistrict, Relaxed: t.RestaurantDistrictRelaxed}
	ec.RestaurantStation = recommend.Thresholds{Primary: t.RestaurantStation, Relaxed: t.RestaurantStationRelaxed}
	ec.Cafe = recommend.Thresholds{Primary: t.Cafe, Relaxed: t.CafeRelaxed}

	if err := ec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	return ec, nil
}

// WeatherThresholds converts the weather config section into advisory thresholds.
func WeatherThresholds(cfg config.WeatherConfig) weather.Thresholds {
	return weather.Thresholds{
		RainfallMM:      cfg.RainfallMM,
		DiscomfortIndex: cfg.DiscomfortIndex,
		UVIndex:         cfg.UVIndex,
	}
}

// BreakerSettings converts the breaker config into lookup breaker settings.
func BreakerSettings(cfg config.BreakerConfig) weather.BreakerSettings {
	s := weather.DefaultBreakerSettings()
	s.MaxRequests = cfg.MaxRequests
	s.Interval = cfg.Interval
	s.Timeout = cfg.Timeout
	s.MinRequests = cfg.MinRequests
	s.FailureRatio = cfg.FailureRatio
	return s
}
