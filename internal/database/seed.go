// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/models"
)

// districtCenters are approximate district office coordinates used to place
// generated rows.
var districtCenters = map[string][2]float64{
	"강남구": {37.5172, 127.0473}, "강동구": {37.5301, 127.1238}, "강북구": {37.6396, 127.0257},
	"강서구": {37.5509, 126.8495}, "관악구": {37.4784, 126.9516}, "광진구": {37.5385, 127.0823},
	"구로구": {37.4954, 126.8874}, "금천구": {37.4569, 126.8955}, "노원구": {37.6542, 127.0568},
	"도봉구": {37.6688, 127.0471}, "동대문구": {37.5744, 127.0400}, "동작구": {37.5124, 126.9393},
	"마포구": {37.5663, 126.9019}, "서대문구": {37.5791, 126.9368}, "서초구": {37.4837, 127.0324},
	"성동구": {37.5633, 127.0371}, "성북구": {37.5894, 127.0167}, "송파구": {37.5145, 127.1059},
	"양천구": {37.5170, 126.8665}, "영등포구": {37.5264, 126.8962}, "용산구": {37.5326, 126.9905},
	"은평구": {37.6027, 126.9291}, "종로구": {37.5735, 126.9790}, "중구": {37.5641, 126.9979},
	"중랑구": {37.6063, 127.0925},
}

var (
	seedFoodCategories = []string{
		"육류구이류", "탕류", "일식류", "국류", "중국식면류", "돈가스류", "국밥류",
		"찌개류", "한식", "육류생회류", "양식", "분식",
	}
	seedActivityCategories = []string{"전시", "공방", "방탈출", "공원", "산책로", "보드게임", "영화관", "전망대"}
	seedCafeCategories     = []string{"카페", "디저트카페", "베이커리카페", "브런치카페"}
	seedSky                = []string{"맑음", "구름많음", "흐림"}
	seedAir                = []string{"좋음", "보통", "나쁨"}
	seedStationSuffixes    = []string{"역", "시장역", "입구역"}
)

// SeedStats reports the rows generated per collection.
type SeedStats map[string]int

// SeedMockData fills every empty collection with generated rows so the
// service can run without imported data. Collections that already hold rows
// are left untouched. perDistrict is the number of places generated per
// district for each place collection.
func (db *DB) SeedMockData(ctx context.Context, perDistrict int, seed int64) (SeedStats, error) {
	if perDistrict <= 0 {
		return nil, fmt.Errorf("perDistrict must be positive, got %d", perDistrict)
	}

	g := &seeder{
		fake:        faker.NewWithSeed(rand.NewSource(seed)),
		perDistrict: perDistrict,
		now:         time.Now().Truncate(time.Hour),
	}

	stats := make(SeedStats)
	for _, t := range tables {
		n, err := db.Count(ctx, t.name)
		if err != nil {
			return stats, err
		}
		if n > 0 {
			db.logger.Debug().Str("collection", t.name).Int64("rows", n).Msg("Collection not empty, skipping seed")
			continue
		}

		rows := g.rows(t.name)
		if err := db.insertRows(ctx, t, rows); err != nil {
			return stats, fmt.Errorf("failed to seed %s: %w", t.name, err)
		}
		stats[t.name] = len(rows)
	}

	db.logger.Info().Interface("rows", stats).Msg("Seeded mock data")
	return stats, nil
}

// insertRows writes rows inside one transaction through a prepared statement.
func (db *DB) insertRows(ctx context.Context, t table, rows [][]any) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(driverDuckDB, "insert_"+t.name, time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	stmt, err := tx.PrepareContext(ctx, t.insertSQL())
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer closeWithLog(stmt, db.logger, "statement")

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}

type seeder struct {
	fake        faker.Faker
	perDistrict int
	now         time.Time
}

// rows generates the values for collection in table column order.
func (s *seeder) rows(collection string) [][]any {
	var out [][]any
	for _, district := range geo.Districts() {
		switch collection {
		case models.CollectionRestaurant:
			for i := 0; i < s.perDistrict; i++ {
				out = append(out, append(s.place(district, seedFoodCategories, "식당"), s.price()))
			}
		case models.CollectionActivity:
			for i := 0; i < s.perDistrict; i++ {
				out = append(out, append(s.place(district, seedActivityCategories, ""), int64(s.fake.IntBetween(0, 2))))
			}
		case models.CollectionCafe:
			for i := 0; i < s.perDistrict; i++ {
				out = append(out, s.place(district, seedCafeCategories, "카페"))
			}
		case models.CollectionWeather:
			for _, station := range stationsOf(district) {
				out = append(out, s.reading(district, station))
			}
		case models.CollectionStationScore:
			for _, station := range stationsOf(district) {
				out = append(out, []any{station, s.fake.Float64(1, 1, 5)})
			}
		}
	}
	return out
}

// place returns the shared place columns: name, address, category, score,
// review, latitude, longitude, station.
func (s *seeder) place(district string, categories []string, suffix string) []any {
	center := districtCenters[district]
	name := strings.TrimSpace(s.fake.Company().Name() + " " + suffix)
	address := fmt.Sprintf("서울특별시 %s %s %d", district, s.fake.Address().StreetName(), s.fake.IntBetween(1, 300))
	stations := stationsOf(district)

	return []any{
		name,
		address,
		s.fake.RandomStringElement(categories),
		s.fake.Float64(2, 3, 5),
		int64(s.fake.IntBetween(0, 5000)),
		center[0] + s.jitter(),
		center[1] + s.jitter(),
		stations[s.fake.IntBetween(0, len(stations)-1)],
	}
}

// price returns a per-person price in 1000 won steps; about one in ten is unknown.
func (s *seeder) price() any {
	if s.fake.IntBetween(1, 10) == 1 {
		return nil
	}
	return int64(s.fake.IntBetween(5, 45) * 1000)
}

func (s *seeder) reading(district, station string) []any {
	precipitation := 0.0
	if s.fake.IntBetween(1, 5) == 1 {
		precipitation = s.fake.Float64(1, 0, 15)
	}
	return []any{
		district,
		station,
		s.now,
		s.fake.Float64(1, -5, 34),
		precipitation,
		s.fake.Float64(0, 20, 95),
		s.fake.RandomStringElement(seedSky),
		s.fake.Float64(0, 0, 11),
		s.fake.RandomStringElement(seedAir),
		s.fake.Float64(1, 0, 8),
	}
}

// jitter spreads places about 1.5km around the district center.
func (s *seeder) jitter() float64 {
	return s.fake.Float64(4, -15, 15) / 1000
}

// stationsOf returns the generated station names of a district.
func stationsOf(district string) []string {
	base := strings.TrimSuffix(district, "구")
	out := make([]string, len(seedStationSuffixes))
	for i, suffix := range seedStationSuffixes {
		out[i] = base + suffix
	}
	return out
}
