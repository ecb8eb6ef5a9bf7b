// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/ojakgyo/internal/config"
	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/recommend"
)

// loadTestConfig loads the defaults with an in-memory DuckDB.
func loadTestConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("DUCKDB_MAX_MEMORY", "512MB")
	t.Setenv("DUCKDB_THREADS", "2")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	return cfg
}

func TestOpen_SeededDuckDB(t *testing.T) {
	cfg := loadTestConfig(t, map[string]string{
		"SEED_MOCK_DATA":    "true",
		"SEED_PER_DISTRICT": "3",
	})

	a, err := Open(context.Background(), cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if a.DB == nil {
		t.Fatal("DB is nil for the duckdb driver")
	}
	counts := a.Catalog.Counts()
	if counts.Restaurants != 75 || counts.Attractions != 75 || counts.Cafes != 75 {
		t.Errorf("catalog counts = %+v, want 75 each", counts)
	}

	course := a.Engine.CreateDateCourse(context.Background(), recommend.CourseRequest{District: "강남구"})
	if course.Error != "" {
		t.Fatalf("CreateDateCourse() error = %q", course.Error)
	}
	if course.District != "강남구" {
		t.Errorf("district = %q", course.District)
	}
	if s := a.Engine.WeatherCacheStats(); s == nil || s.Keys != 1 {
		t.Errorf("WeatherCacheStats() = %+v, want one cached district", s)
	}

	stations, err := a.Engine.Stations(context.Background(), "강남구")
	if err != nil {
		t.Fatalf("Stations() error = %v", err)
	}
	if len(stations) == 0 {
		t.Error("no stations for a seeded district")
	}
}

func TestOpen_ImportDir(t *testing.T) {
	dir := t.TempDir()
	csv := "name,address,category,price,score,review,latitude,longitude,station\n" +
		"한우집,서울특별시 마포구 양화로 1,육류구이류,\"15,000\",4.5,\"1,000\",37.55,126.92,홍대입구역\n"
	if err := os.WriteFile(filepath.Join(dir, "restaurant.csv"), []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := loadTestConfig(t, map[string]string{"IMPORT_DIR": dir})
	a, err := Open(context.Background(), cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if got := a.Catalog.Counts().Restaurants; got != 1 {
		t.Fatalf("restaurants = %d, want 1", got)
	}
	got := a.Engine.RecommendRestaurants(context.Background(), "마포구", recommend.RandomCategory, recommend.Budget{})
	if len(got) != 1 || got[0].Name != "한우집" {
		t.Errorf("RecommendRestaurants() = %+v", got)
	}
}

func TestOpen_BadImportDir(t *testing.T) {
	cfg := loadTestConfig(t, map[string]string{"IMPORT_DIR": filepath.Join(t.TempDir(), "nope")})
	if _, err := Open(context.Background(), cfg, logging.NewTestLogger(io.Discard)); err == nil {
		t.Fatal("Open() with a missing import dir succeeded")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := loadTestConfig(t, nil)

	ec, err := EngineConfig(cfg.Recommend)
	if err != nil {
		t.Fatalf("EngineConfig() error = %v", err)
	}
	want := recommend.DefaultConfig()
	if ec.Limit != want.Limit || ec.Strategy != want.Strategy || ec.Preferences.Name != want.Preferences.Name {
		t.Errorf("EngineConfig() = %+v", ec)
	}
	if ec.RestaurantDistrict != want.RestaurantDistrict || ec.RestaurantStation != want.RestaurantStation || ec.Cafe != want.Cafe {
		t.Errorf("thresholds = %+v %+v %+v", ec.RestaurantDistrict, ec.RestaurantStation, ec.Cafe)
	}

	bad := cfg.Recommend
	bad.PreferenceTable = "spicy"
	if _, err := EngineConfig(bad); err == nil {
		t.Error("unknown preference table accepted")
	}
}

func TestWeatherSettings(t *testing.T) {
	cfg := loadTestConfig(t, map[string]string{
		"WEATHER_RAINFALL_THRESHOLD":   "3",
		"WEATHER_BREAKER_MIN_REQUESTS": "4",
	})

	if th := WeatherThresholds(cfg.Weather); th.RainfallMM != 3 || th.DiscomfortIndex != 75 || th.UVIndex != 7 {
		t.Errorf("WeatherThresholds() = %+v", th)
	}
	if s := BreakerSettings(cfg.Weather.Breaker); s.MinRequests != 4 || s.Name == "" {
		t.Errorf("BreakerSettings() = %+v", s)
	}
}
