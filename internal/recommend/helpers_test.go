// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"io"
	"testing"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// placeSpec describes a fixture place. Zero coordinates mean no location and
// a zero price means no price.
type placeSpec struct {
	name     string
	district string
	category string
	station  string
	price    int64
	rating   float64
	reviews  int64
	lat, lon float64
	typ      models.ActivityType
}

func mkPlace(kind models.Kind, s placeSpec) models.Place {
	rating, reviews := s.rating, s.reviews
	p := models.Place{
		Kind:         kind,
		Name:         s.name,
		Address:      "서울특별시 " + s.district + " 테스트로 1",
		District:     s.district,
		Category:     s.category,
		Station:      s.station,
		Rating:       &rating,
		Reviews:      &reviews,
		ActivityType: s.typ,
	}
	if s.lat != 0 || s.lon != 0 {
		lat, lon := s.lat, s.lon
		p.Latitude, p.Longitude = &lat, &lon
	}
	if s.price > 0 {
		price := s.price
		p.Price = &price
		p.PriceBucket = models.PriceBucket(p.Price)
	}
	p.EvaluationScore = models.EvaluationScore(p.Rating, p.Reviews)
	return p
}

func mkAll(kind models.Kind, specs ...placeSpec) []models.Place {
	out := make([]models.Place, len(specs))
	for i, s := range specs {
		out[i] = mkPlace(kind, s)
	}
	return out
}

// Evaluation scores of the fixture ratings:
//
//	4.5, 1000 reviews: 31.09
//	4.5,  100 reviews: 20.77
//	4.0,   50 reviews: 15.73
//	4.2,   30 reviews: 14.42
//	3.5,   20 reviews: 10.66
//	3.0,   10 reviews:  7.19
type fixture struct {
	restaurants []models.Place
	activities  []models.Place
	cafes       []models.Place
	readings    []*weather.Reading
}

func newTestEngine(t *testing.T, f fixture, mutate func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	catalog := dataset.NewCatalog(f.restaurants, f.activities, f.cafes, f.readings)
	engine, err := NewEngine(cfg, catalog, nil, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func names(places []ScoredPlace) []string {
	out := make([]string, len(places))
	for i := range places {
		out[i] = places[i].Name
	}
	return out
}

func assertDescending(t *testing.T, places []ScoredPlace) {
	t.Helper()
	for i := 1; i < len(places); i++ {
		if places[i].key > places[i-1].key {
			t.Fatalf("not sorted: %s (%.2f) after %s (%.2f)",
				places[i].Name, places[i].key, places[i-1].Name, places[i-1].key)
		}
	}
}
