// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

// Package dataset loads the place collections into an immutable Catalog.
//
// Collections are read through a RowSource (DuckDB, PostgreSQL or the
// in-memory StaticSource) concurrently with errgroup. The catalog derives the
// district of every place and the review normalization used by the legacy
// scoring strategy, keeps the latest weather reading per district, and serves
// as a weather.Source and StationSource when no live database is attached.
package dataset
