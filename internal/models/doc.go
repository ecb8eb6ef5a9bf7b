// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package models defines the place records shared by the store, the catalog
and the recommendation engine.

A Place is built from a Row, the column map returned by every store. Row
accessors coerce loosely typed values (strings with thousands separators,
driver numerics, NULLs) so CSV imports and database drivers can be mixed.

Derived fields are filled once at load time:

  - District from the address
  - PriceBucket and PriceRange from the price (restaurants only)
  - NormalizedReviews across the collection
  - EvaluationScore from rating and review count
*/
package models
