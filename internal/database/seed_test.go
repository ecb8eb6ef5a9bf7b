// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"math/rand"
	"testing"

	"github.com/jaswdr/faker"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/models"
)

func TestDB_SeedMockData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	stats, err := db.SeedMockData(ctx, 3, 7)
	if err != nil {
		t.Fatalf("SeedMockData() error = %v", err)
	}

	districts := len(geo.Districts())
	want := map[string]int{
		models.CollectionRestaurant:   3 * districts,
		models.CollectionActivity:     3 * districts,
		models.CollectionCafe:         3 * districts,
		models.CollectionWeather:      len(seedStationSuffixes) * districts,
		models.CollectionStationScore: len(seedStationSuffixes) * districts,
	}
	for collection, n := range want {
		if stats[collection] != n {
			t.Errorf("stats[%s] = %d, want %d", collection, stats[collection], n)
		}
	}

	// Seeding again leaves populated collections alone.
	again, err := db.SeedMockData(ctx, 3, 7)
	if err != nil {
		t.Fatalf("second SeedMockData() error = %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second SeedMockData() = %v, want no writes", again)
	}

	stations, err := db.Stations(ctx, "강남구", 5)
	if err != nil {
		t.Fatalf("Stations() error = %v", err)
	}
	if len(stations) != len(seedStationSuffixes) {
		t.Errorf("Stations(강남구) = %d, want %d", len(stations), len(seedStationSuffixes))
	}
}

func TestDB_SeedMockData_RejectsNonPositive(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.SeedMockData(context.Background(), 0, 1); err == nil {
		t.Error("SeedMockData(0) should fail")
	}
}

func TestSeeder_RowsMatchColumns(t *testing.T) {
	t.Parallel()
	s := &seeder{fake: faker.NewWithSeed(rand.NewSource(1)), perDistrict: 1}
	for _, tbl := range tables {
		rows := s.rows(tbl.name)
		if len(rows) == 0 {
			t.Errorf("rows(%s) is empty", tbl.name)
			continue
		}
		for _, r := range rows {
			if len(r) != len(tbl.columns) {
				t.Fatalf("rows(%s) has %d values, want %d", tbl.name, len(r), len(tbl.columns))
			}
		}
	}
}

func TestStationsOf(t *testing.T) {
	t.Parallel()
	got := stationsOf("강남구")
	if len(got) != len(seedStationSuffixes) || got[0] != "강남역" {
		t.Errorf("stationsOf(강남구) = %v", got)
	}
}
