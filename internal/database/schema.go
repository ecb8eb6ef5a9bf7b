// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// Column types shared by DuckDB and PostgreSQL.
const (
	typeText      = "VARCHAR"
	typeDouble    = "DOUBLE PRECISION"
	typeBigint    = "BIGINT"
	typeTimestamp = "TIMESTAMP"
)

type column struct {
	name string
	typ  string
}

// table describes one collection. Table names equal collection names.
type table struct {
	name    string
	columns []column
}

var placeColumns = []column{
	{models.ColName, typeText},
	{models.ColAddress, typeText},
	{models.ColCategory, typeText},
	{models.ColScore, typeDouble},
	{models.ColReview, typeBigint},
	{models.ColLatitude, typeDouble},
	{models.ColLongitude, typeDouble},
	{models.ColStation, typeText},
}

// tables lists every collection in import order.
var tables = []table{
	{
		name:    models.CollectionRestaurant,
		columns: append(append([]column{}, placeColumns...), column{models.ColPrice, typeBigint}),
	},
	{
		name:    models.CollectionActivity,
		columns: append(append([]column{}, placeColumns...), column{models.ColType, typeBigint}),
	},
	{
		name:    models.CollectionCafe,
		columns: append([]column{}, placeColumns...),
	},
	{
		name: models.CollectionWeather,
		columns: []column{
			{weather.ColDistrict, typeText},
			{dataset.ColStation, typeText},
			{weather.ColTime, typeTimestamp},
			{weather.ColTemperature, typeDouble},
			{weather.ColPrecipitation, typeDouble},
			{weather.ColHumidity, typeDouble},
			{weather.ColSky, typeText},
			{weather.ColUV, typeDouble},
			{weather.ColAirIndex, typeText},
			{weather.ColWindSpeed, typeDouble},
		},
	},
	{
		name: models.CollectionStationScore,
		columns: []column{
			{dataset.ColStation, typeText},
			{dataset.ColStar, typeDouble},
		},
	},
}

// tableFor returns the table backing collection.
func tableFor(collection string) (table, bool) {
	for _, t := range tables {
		if t.name == collection {
			return t, true
		}
	}
	return table{}, false
}

// quoteIdent quotes an identifier; several column names (type, datetime) are keywords.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (t table) columnList() string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = quoteIdent(c.name)
	}
	return strings.Join(names, ", ")
}

func (t table) createSQL() string {
	defs := make([]string, len(t.columns))
	for i, c := range t.columns {
		defs[i] = quoteIdent(c.name) + " " + c.typ
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(t.name), strings.Join(defs, ", "))
}

func (t table) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", t.columnList(), quoteIdent(t.name))
}

// insertSQL builds an INSERT with one positional parameter per column.
func (t table) insertSQL() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(t.name), t.columnList(), marks)
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, t := range tables {
		if _, err := db.conn.ExecContext(ctx, t.createSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_spot_gu ON spot (gu)`,
		`CREATE INDEX IF NOT EXISTS idx_score_station ON score (station)`,
	}
	for _, stmt := range indexes {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
