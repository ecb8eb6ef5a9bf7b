// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

const driverPostgres = "postgres"

// PostgresSource reads the collections from PostgreSQL tables laid out like
// the DuckDB schema. It is read-only; data is loaded by external tooling.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresSource connects to dsn and verifies the connection.
func NewPostgresSource(ctx context.Context, dsn string, logger zerolog.Logger) (*PostgresSource, error) {
	if dsn == "" {
		return nil, errors.New("postgres: empty dsn")
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresSource{
		pool:   pool,
		logger: logger.With().Str("component", "database").Str("driver", driverPostgres).Logger(),
	}, nil
}

// Close releases the pool.
func (p *PostgresSource) Close() error {
	p.pool.Close()
	return nil
}

// Ping verifies the pool can reach the server.
func (p *PostgresSource) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Rows returns every row of collection. It implements dataset.RowSource.
// A missing table is reported as dataset.ErrUnknownCollection so the catalog
// loads it as empty.
func (p *PostgresSource) Rows(ctx context.Context, collection string) ([]models.Row, error) {
	t, ok := tableFor(collection)
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, dataset.ErrUnknownCollection)
	}
	rows, err := p.queryRows(ctx, "rows_"+collection, t.selectSQL())
	if isUndefinedTable(err) {
		return nil, fmt.Errorf("%s: %w", collection, dataset.ErrUnknownCollection)
	}
	return rows, err
}

// LatestWeather implements weather.Source.
func (p *PostgresSource) LatestWeather(ctx context.Context, district string) (*weather.Reading, error) {
	t, _ := tableFor(models.CollectionWeather)
	rows, err := p.queryRows(ctx, "latest_weather", fmt.Sprintf(latestWeatherSQL, t.columnList(), "$1"), district)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return weather.ReadingFromRow(rows[0]), nil
}

// Stations implements dataset.StationSource.
func (p *PostgresSource) Stations(ctx context.Context, district string, limit int) ([]dataset.Station, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := p.queryRows(ctx, "stations", fmt.Sprintf(stationsSQL, "$1", "$2"), district, limit)
	if err != nil {
		return nil, err
	}
	return stationsFromRows(rows), nil
}

func (p *PostgresSource) queryRows(ctx context.Context, op, query string, args ...any) (out []models.Row, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(driverPostgres, op, time.Since(start), err)
	}()

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", op, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("query %s failed: %w", op, err)
		}
		row := make(models.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = pgValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s failed: %w", op, err)
	}
	return out, nil
}

// pgValue converts pgx values that models.Row cannot coerce. NUMERIC columns
// decode to pgtype.Numeric.
func pgValue(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid || n.NaN {
			return nil
		}
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}

// isUndefinedTable reports a 42P01 (undefined_table) server error.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
