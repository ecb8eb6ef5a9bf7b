// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// Score collection columns.
const (
	ColStation = "station"
	ColStar    = "star"
)

// Load reads every collection from src concurrently and builds a Catalog.
// A collection src does not have loads as empty with a warning, so the
// engine answers with empty lists and default advisories instead of failing.
// Rows without a name are skipped and counted. Other read errors are returned.
func Load(ctx context.Context, src RowSource, logger zerolog.Logger) (*Catalog, error) {
	if src == nil {
		return nil, errors.New("dataset: nil row source")
	}
	start := time.Now()
	logger = logger.With().Str("component", "dataset").Logger()

	var (
		restaurants, activities, cafes []models.Place
		spotRows, scoreRows            []models.Row
	)

	g, gCtx := errgroup.WithContext(ctx)

	readPlaces := func(kind models.Kind, dst *[]models.Place) {
		g.Go(func() error {
			places, err := loadPlaces(gCtx, src, kind, logger)
			if err != nil {
				return err
			}
			*dst = places
			return nil
		})
	}
	readPlaces(models.KindRestaurant, &restaurants)
	readPlaces(models.KindActivity, &activities)
	readPlaces(models.KindCafe, &cafes)

	readRows := func(collection string, dst *[]models.Row) {
		g.Go(func() error {
			rows, err := src.Rows(gCtx, collection)
			if errors.Is(err, ErrUnknownCollection) {
				metrics.CatalogMissingCollections.WithLabelValues(collection).Inc()
				logger.Warn().Str("collection", collection).Msg("Collection not available, loading it empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", collection, err)
			}
			*dst = rows
			return nil
		})
	}
	readRows(models.CollectionWeather, &spotRows)
	readRows(models.CollectionStationScore, &scoreRows)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	readings := make([]*weather.Reading, 0, len(spotRows))
	byDistrict := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, row := range spotRows {
		r := weather.ReadingFromRow(row)
		readings = append(readings, r)

		station := row.String(ColStation)
		if r.District == "" || station == "" {
			continue
		}
		if seen[r.District] == nil {
			seen[r.District] = make(map[string]bool)
		}
		if !seen[r.District][station] {
			seen[r.District][station] = true
			byDistrict[r.District] = append(byDistrict[r.District], station)
		}
	}

	stars := make(map[string]float64, len(scoreRows))
	for _, row := range scoreRows {
		station := row.String(ColStation)
		star := row.Float(ColStar)
		if station == "" || star == nil {
			continue
		}
		stars[station] = *star
	}

	c := NewCatalog(restaurants, activities, cafes, readings).withStations(stars, byDistrict)

	metrics.CatalogPlaces.WithLabelValues(models.CollectionRestaurant).Set(float64(len(c.restaurants)))
	metrics.CatalogPlaces.WithLabelValues(models.CollectionActivity).Set(float64(len(c.activities)))
	metrics.CatalogPlaces.WithLabelValues(models.CollectionCafe).Set(float64(len(c.cafes)))
	metrics.CatalogLoadDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("restaurants", len(c.restaurants)).
		Int("activities", len(c.activities)).
		Int("cafes", len(c.cafes)).
		Int("weather_districts", len(c.readings)).
		Int("stations", len(stars)).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return c, nil
}

func loadPlaces(ctx context.Context, src RowSource, kind models.Kind, logger zerolog.Logger) ([]models.Place, error) {
	collection := kind.Collection()
	rows, err := src.Rows(ctx, collection)
	if errors.Is(err, ErrUnknownCollection) {
		metrics.CatalogMissingCollections.WithLabelValues(collection).Inc()
		logger.Warn().Str("collection", collection).Msg("Place collection not available, loading it empty")
		return []models.Place{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	places := make([]models.Place, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		p, err := models.FromRow(kind, row)
		if err != nil {
			skipped++
			logger.Warn().Err(err).Str("collection", collection).Int("row", i).Msg("Skipping row")
			continue
		}
		places = append(places, p)
	}

	if skipped > 0 {
		metrics.CatalogSkippedRows.WithLabelValues(collection).Add(float64(skipped))
	}
	return places, nil
}
