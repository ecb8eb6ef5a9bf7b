// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ojakgyo/config.yaml",
	"/etc/ojakgyo/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// sliceConfigPaths are koanf paths that accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// defaultConfig returns a Config with every default applied. Defaults are loaded
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RequestTimeout:    10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "duckdb",
			Path:            "/data/ojakgyo.duckdb",
			MaxMemory:       "1GB",
			SeedPerDistrict: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: RecommendConfig{
			Limit:              10,
			Strategy:           "evaluation",
			PreferenceTable:    "classic",
			StationMinMatches:  5,
			IndoorMinMatches:   3,
			CafeDistanceWeight: 0.01,
			Thresholds: ThresholdConfig{
				RestaurantDistrict:        19,
				RestaurantDistrictRelaxed: 15,
				RestaurantStation:         15,
				RestaurantStationRelaxed:  10,
				Cafe:                      14,
				CafeRelaxed:               10,
			},
		},
		Weather: WeatherConfig{
			RainfallMM:      5,
			DiscomfortIndex: 75,
			UVIndex:         7,
			LookupTimeout:   3 * time.Second,
			CacheTTL:        time.Minute,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
	}
}

// LoadWithKoanf loads configuration using koanf with layered sources:
// struct defaults, then the YAML config file (if any), then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, RECOMMENDATION_LIMIT -> recommend.limit, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first existing default path.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotEnv exports the variables of an optional .env file. Variables already
// present in the environment keep their values.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// API
	"cors_origins":        "api.cors_origins",
	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",
	"request_timeout":     "api.request_timeout",

	// Database
	"db_driver":         "database.driver",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"database_url":      "database.postgres_dsn",
	"postgres_dsn":      "database.postgres_dsn",
	"import_dir":        "database.import_dir",
	"seed_mock_data":    "database.seed_mock_data",
	"seed_per_district": "database.seed_per_district",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine
	"recommendation_limit":             "recommend.limit",
	"recommend_strategy":               "recommend.strategy",
	"recommend_preference_table":       "recommend.preference_table",
	"recommend_station_min_matches":    "recommend.station_min_matches",
	"recommend_indoor_min_matches":     "recommend.indoor_min_matches",
	"recommend_cafe_distance_weight":   "recommend.cafe_distance_weight",
	"restaurant_threshold":             "recommend.thresholds.restaurant_district",
	"restaurant_threshold_relaxed":     "recommend.thresholds.restaurant_district_relaxed",
	"station_restaurant_threshold":     "recommend.thresholds.restaurant_station",
	"station_restaurant_threshold_rel": "recommend.thresholds.restaurant_station_relaxed",
	"cafe_threshold":                   "recommend.thresholds.cafe",
	"cafe_threshold_relaxed":           "recommend.thresholds.cafe_relaxed",

	// Weather
	"weather_rainfall_threshold":    "weather.rainfall_mm",
	"weather_discomfort_threshold":  "weather.discomfort_index",
	"uv_index_threshold":            "weather.uv_index",
	"weather_lookup_timeout":        "weather.lookup_timeout",
	"weather_cache_ttl":             "weather.cache_ttl",
	"weather_breaker_max_requests":  "weather.breaker.max_requests",
	"weather_breaker_interval":      "weather.breaker.interval",
	"weather_breaker_timeout":       "weather.breaker.timeout",
	"weather_breaker_min_requests":  "weather.breaker.min_requests",
	"weather_breaker_failure_ratio": "weather.breaker.failure_ratio",
}

// envTransformFunc transforms environment variable names to koanf config paths.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
