// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

const (
	latestWeatherSQL = `SELECT %s FROM spot WHERE gu = %s ORDER BY "datetime" DESC NULLS LAST LIMIT 1`

	// Stations are de-duplicated per district and must have a score row.
	stationsSQL = `SELECT s.station, MAX(sc.star) AS star
		FROM (SELECT DISTINCT station FROM spot WHERE gu = %s AND station IS NOT NULL AND station <> '') s
		JOIN score sc ON sc.station = s.station
		WHERE sc.star IS NOT NULL
		GROUP BY s.station
		ORDER BY star DESC, s.station
		LIMIT %s`
)

// Rows returns every row of collection. It implements dataset.RowSource.
func (db *DB) Rows(ctx context.Context, collection string) ([]models.Row, error) {
	t, ok := tableFor(collection)
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, dataset.ErrUnknownCollection)
	}
	return db.queryRows(ctx, "rows_"+collection, t.selectSQL())
}

// LatestWeather returns the most recent spot reading for district, or nil
// when the district has none. It implements weather.Source.
func (db *DB) LatestWeather(ctx context.Context, district string) (*weather.Reading, error) {
	t, _ := tableFor(models.CollectionWeather)
	rows, err := db.queryRows(ctx, "latest_weather", fmt.Sprintf(latestWeatherSQL, t.columnList(), "?"), district)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return weather.ReadingFromRow(rows[0]), nil
}

// Stations returns up to limit stations of district ordered by star rating.
// It implements dataset.StationSource.
func (db *DB) Stations(ctx context.Context, district string, limit int) ([]dataset.Station, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.queryRows(ctx, "stations", fmt.Sprintf(stationsSQL, "?", "?"), district, limit)
	if err != nil {
		return nil, err
	}
	return stationsFromRows(rows), nil
}

// Count returns the number of rows in collection.
func (db *DB) Count(ctx context.Context, collection string) (int64, error) {
	t, ok := tableFor(collection)
	if !ok {
		return 0, fmt.Errorf("%s: %w", collection, dataset.ErrUnknownCollection)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var n int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(t.name)).Scan(&n)
	metrics.RecordDBQuery(driverDuckDB, "count", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return n, nil
}

// queryRows runs query and returns each result row keyed by column name.
func (db *DB) queryRows(ctx context.Context, op, query string, args ...any) (out []models.Row, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(driverDuckDB, op, time.Since(start), err)
	}()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", op, err)
	}
	defer closeWithLog(rows, db.logger, "rows")

	out, err = scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", op, err)
	}
	return out, nil
}

func scanRows(rows *sql.Rows) ([]models.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []models.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func stationsFromRows(rows []models.Row) []dataset.Station {
	out := make([]dataset.Station, 0, len(rows))
	for _, row := range rows {
		star := row.Float(dataset.ColStar)
		name := row.String(dataset.ColStation)
		if star == nil || name == "" {
			continue
		}
		out = append(out, dataset.Station{Name: name, Star: *star})
	}
	return out
}
