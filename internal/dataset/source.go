// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/ojakgyo/internal/models"
)

// ErrUnknownCollection is returned by a RowSource that does not hold the
// requested collection.
var ErrUnknownCollection = errors.New("unknown collection")

// RowSource reads every row of a named collection.
type RowSource interface {
	Rows(ctx context.Context, collection string) ([]models.Row, error)
}

// Station is a subway station with its rating.
type Station struct {
	Name string  `json:"station"`
	Star float64 `json:"star"`
}

// StationSource lists the best rated stations of a district.
type StationSource interface {
	Stations(ctx context.Context, district string, limit int) ([]Station, error)
}

// StaticSource is an in-memory RowSource keyed by collection name.
type StaticSource map[string][]models.Row

// Rows returns the rows of collection.
func (s StaticSource) Rows(ctx context.Context, collection string) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, ok := s[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}
	out := make([]models.Row, len(rows))
	copy(out, rows)
	return out, nil
}
