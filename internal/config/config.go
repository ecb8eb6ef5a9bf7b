// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Weather   WeatherConfig   `koanf:"weather"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// APIConfig holds settings for the public JSON API.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// RequestTimeout bounds a single recommendation request, weather lookup included.
	// Default: 10s
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// DatabaseConfig selects and configures the place data store.
type DatabaseConfig struct {
	// Driver is duckdb (embedded, default) or postgres.
	Driver string `koanf:"driver"`

	// DuckDB settings
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = NumCPU

	// PostgresDSN is a pgx connection string, required when Driver is postgres.
	PostgresDSN string `koanf:"postgres_dsn"`

	// ImportDir, when set, is scanned at startup for restaurant.csv, enjoy.csv,
	// cafe.csv, spot.csv and score.csv which replace the matching tables.
	ImportDir string `koanf:"import_dir"`

	// SeedMockData fills empty tables with generated places for demos.
	SeedMockData bool `koanf:"seed_mock_data"`

	// SeedPerDistrict is the number of generated places per district and category.
	// Default: 12
	SeedPerDistrict int `koanf:"seed_per_district"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds the recommendation engine settings.
type RecommendConfig struct {
	// Limit is the maximum number of candidates returned per category.
	// Default: 10
	Limit int `koanf:"limit"`

	// Strategy names the ranking strategy: evaluation or weighted.
	// Default: evaluation
	Strategy string `koanf:"strategy"`

	// PreferenceTable names the food preference table: classic or revised.
	// Default: classic
	PreferenceTable string `koanf:"preference_table"`

	// StationMinMatches is the number of station-scoped places required before
	// the station scope is used instead of the whole district.
	// Default: 5
	StationMinMatches int `koanf:"station_min_matches"`

	// IndoorMinMatches is the minimum size of an indoor-only activity subset on
	// the station path.
	// Default: 3
	IndoorMinMatches int `koanf:"indoor_min_matches"`

	// CafeDistanceWeight is subtracted per meter from a café's score when a
	// reference restaurant is known.
	// Default: 0.01
	CafeDistanceWeight float64 `koanf:"cafe_distance_weight"`

	Thresholds ThresholdConfig `koanf:"thresholds"`
}

// ThresholdConfig holds the evaluation score cut-offs and their relaxed values.
type ThresholdConfig struct {
	RestaurantDistrict        float64 `koanf:"restaurant_district"`
	RestaurantDistrictRelaxed float64 `koanf:"restaurant_district_relaxed"`
	RestaurantStation         float64 `koanf:"restaurant_station"`
	RestaurantStationRelaxed  float64 `koanf:"restaurant_station_relaxed"`
	Cafe                      float64 `koanf:"cafe"`
	CafeRelaxed               float64 `koanf:"cafe_relaxed"`
}

// WeatherConfig holds advisory thresholds and the lookup circuit breaker settings.
type WeatherConfig struct {
	// RainfallMM above which indoor activities are advised.
	// Default: 5
	RainfallMM float64 `koanf:"rainfall_mm"`

	// DiscomfortIndex above which indoor activities are advised.
	// Default: 75
	DiscomfortIndex float64 `koanf:"discomfort_index"`

	// UVIndex above which indoor activities are advised.
	// Default: 7
	UVIndex float64 `koanf:"uv_index"`

	// LookupTimeout bounds a single latest-reading query.
	// Default: 3s
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	// CacheTTL keeps the latest reading per district; 0 disables the cache.
	// Default: 1m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of weather lookups.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// Address returns the host:port listen address.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads configuration from defaults, an optional YAML file, an optional
// .env file and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadWithKoanf()
}
