// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package models

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Row is a single record of a collection keyed by column name.
type Row map[string]any

// Column names shared by the place collections.
const (
	ColName      = "name"
	ColAddress   = "address"
	ColCategory  = "category"
	ColPrice     = "price"
	ColScore     = "score"
	ColReview    = "review"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColStation   = "station"
	ColType      = "type"
)

// ErrMissingName is returned when a row has no usable name.
var ErrMissingName = errors.New("row has no name")

// FromRow builds a Place from a raw row. Unparseable optional values become
// missing values rather than errors; only a missing name rejects the row.
// Derived fields other than NormalizedReviews are filled in.
func FromRow(kind Kind, row Row) (Place, error) {
	name := row.String(ColName)
	if name == "" {
		return Place{}, fmt.Errorf("%s: %w", kind, ErrMissingName)
	}

	p := Place{
		Kind:      kind,
		Name:      name,
		Address:   row.String(ColAddress),
		Category:  row.String(ColCategory),
		Latitude:  row.Float(ColLatitude),
		Longitude: row.Float(ColLongitude),
		Rating:    row.Float(ColScore),
		Reviews:   row.Int(ColReview),
		Station:   row.String(ColStation),
	}

	switch kind {
	case KindRestaurant:
		p.Price = row.Int(ColPrice)
		p.PriceBucket = PriceBucket(p.Price)
		p.PriceRange = PriceRangeLabel(p.Price)
	case KindActivity:
		p.ActivityType = ActivityTypeFromCode(row.Int(ColType))
	}

	p.EvaluationScore = EvaluationScore(p.Rating, p.Reviews)
	return p, nil
}

// String returns the trimmed string value of a column, or "" when missing.
func (r Row) String(col string) string {
	v := unwrap(r[col])
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Float returns the numeric value of a column, or nil when it is missing,
// blank, NaN or not a number.
func (r Row) Float(col string) *float64 {
	v := unwrap(r[col])
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			return nil
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int returns the integer value of a column, or nil when it is missing or
// not a number. Fractional values are truncated.
func (r Row) Int(col string) *int64 {
	f := r.Float(col)
	if f == nil {
		return nil
	}
	if *f > math.MaxInt64 || *f < math.MinInt64 {
		return nil
	}
	n := int64(*f)
	return &n
}

// Time returns the time value of a column, or the zero time when missing or
// unparseable.
func (r Row) Time(col string) time.Time {
	v := unwrap(r[col])
	if v == nil {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// unwrap resolves driver null wrappers to their value or nil.
func unwrap(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case sql.NullString:
		if !x.Valid {
			return nil
		}
		return x.String
	case sql.NullFloat64:
		if !x.Valid {
			return nil
		}
		return x.Float64
	case sql.NullInt64:
		if !x.Valid {
			return nil
		}
		return x.Int64
	case sql.NullTime:
		if !x.Valid {
			return nil
		}
		return x.Time
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		return string(x)
	default:
		return v
	}
}
