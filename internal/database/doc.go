// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package database stores the place, weather and station collections.

DB is an embedded DuckDB database and the default backend. Each collection is
a table named after it (restaurant, enjoy, cafe, spot, score). Tables can be
bootstrapped from CSV files with ImportCSV or filled with generated rows with
SeedMockData.

PostgresSource reads the same tables from PostgreSQL through a pgx pool.

Both backends implement dataset.RowSource, dataset.StationSource and
weather.Source, and record query durations in the db_query metrics.
*/
package database
