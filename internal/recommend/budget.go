// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"github.com/tomtom215/ojakgyo/internal/models"
)

// Budget selects a restaurant price range. An explicit Min and Max pair
// takes precedence over the legacy Range code (1-4).
type Budget struct {
	Min   *int64 `json:"min_budget,omitempty"`
	Max   *int64 `json:"max_budget,omitempty"`
	Range int    `json:"budget_range,omitempty"`
}

// ExplicitBudget returns a budget of [lo, hi] won inclusive.
func ExplicitBudget(lo, hi int64) Budget {
	return Budget{Min: &lo, Max: &hi}
}

// RangeBudget returns a budget for a legacy range code.
func RangeBudget(code int) Budget {
	return Budget{Range: code}
}

// Explicit reports whether both bounds are set.
func (b Budget) Explicit() bool {
	return b.Min != nil && b.Max != nil
}

// filter returns the price filter, or false when the budget does not
// restrict prices. Places without a price never pass.
func (b Budget) filter() (filterFunc, bool) {
	if b.Explicit() {
		lo, hi := *b.Min, *b.Max
		return where(func(p *models.Place) bool {
			return p.Price != nil && *p.Price >= lo && *p.Price <= hi
		}), true
	}
	if b.Range >= 1 && b.Range <= 4 {
		code := b.Range
		return where(func(p *models.Place) bool {
			return p.Price != nil && models.PriceBucket(p.Price) == code
		}), true
	}
	return nil, false
}
