// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package config

import (
	"fmt"
)

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validDrivers = map[string]bool{
		"duckdb": true, "postgres": true,
	}
	validStrategies = map[string]bool{
		"evaluation": true, "weighted": true,
	}
	validPreferenceTables = map[string]bool{
		"classic": true, "revised": true,
	}
	validEnvironments = map[string]bool{
		"development": true, "staging": true, "production": true,
	}
)

// Validate checks that the configuration is complete and internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateWeather()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Environment != "" && !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitDisabled {
		if c.Server.IsProduction() {
			return fmt.Errorf("DISABLE_RATE_LIMIT is not allowed when ENVIRONMENT=production")
		}
		return nil
	}
	if c.API.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.API.RateLimitRequests)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("DB_DRIVER must be one of: duckdb, postgres")
	}
	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DB_DRIVER=duckdb")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	}
	if c.Database.SeedMockData && c.Database.SeedPerDistrict < 1 {
		return fmt.Errorf("SEED_PER_DISTRICT must be positive when SEED_MOCK_DATA=true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Limit < 1 || r.Limit > 100 {
		return fmt.Errorf("recommend.limit must be between 1 and 100, got %d", r.Limit)
	}
	if !validStrategies[r.Strategy] {
		return fmt.Errorf("recommend.strategy must be one of: evaluation, weighted")
	}
	if !validPreferenceTables[r.PreferenceTable] {
		return fmt.Errorf("recommend.preference_table must be one of: classic, revised")
	}
	if r.StationMinMatches < 1 {
		return fmt.Errorf("recommend.station_min_matches must be positive, got %d", r.StationMinMatches)
	}
	if r.IndoorMinMatches < 1 {
		return fmt.Errorf("recommend.indoor_min_matches must be positive, got %d", r.IndoorMinMatches)
	}
	if r.CafeDistanceWeight < 0 {
		return fmt.Errorf("recommend.cafe_distance_weight must be non-negative, got %f", r.CafeDistanceWeight)
	}
	return r.Thresholds.validate()
}

func (t ThresholdConfig) validate() error {
	pairs := []struct {
		name             string
		primary, relaxed float64
	}{
		{"restaurant_district", t.RestaurantDistrict, t.RestaurantDistrictRelaxed},
		{"restaurant_station", t.RestaurantStation, t.RestaurantStationRelaxed},
		{"cafe", t.Cafe, t.CafeRelaxed},
	}
	for _, p := range pairs {
		if p.primary < 0 || p.relaxed < 0 {
			return fmt.Errorf("recommend.thresholds.%s must be non-negative", p.name)
		}
		if p.relaxed > p.primary {
			return fmt.Errorf("recommend.thresholds.%s_relaxed (%g) must not exceed %s (%g)",
				p.name, p.relaxed, p.name, p.primary)
		}
	}
	return nil
}

func (c *Config) validateWeather() error {
	w := c.Weather
	if w.RainfallMM < 0 || w.UVIndex < 0 {
		return fmt.Errorf("weather thresholds must be non-negative")
	}
	if w.LookupTimeout <= 0 {
		return fmt.Errorf("WEATHER_LOOKUP_TIMEOUT must be positive")
	}
	if w.CacheTTL < 0 {
		return fmt.Errorf("WEATHER_CACHE_TTL must not be negative")
	}
	if w.Breaker.FailureRatio <= 0 || w.Breaker.FailureRatio > 1 {
		return fmt.Errorf("weather.breaker.failure_ratio must be in (0, 1], got %f", w.Breaker.FailureRatio)
	}
	if w.Breaker.MaxRequests == 0 {
		return fmt.Errorf("weather.breaker.max_requests must be positive")
	}
	return nil
}
