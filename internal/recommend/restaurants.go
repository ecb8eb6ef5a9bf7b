// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"
	"strings"

	"github.com/tomtom215/ojakgyo/internal/models"
)

// RecommendRestaurants ranks the restaurants of district that fit category
// and budget.
func (e *Engine) RecommendRestaurants(ctx context.Context, district, category string, budget Budget) []ScoredPlace {
	return e.RecommendRestaurantsByStation(ctx, district, "", category, budget)
}

// RecommendRestaurantsByStation ranks restaurants near station, or in the
// whole district when the station has too few.
//
// The cascade is: scope, budget, category (dropped when it empties the set),
// then the evaluation threshold (relaxed, then dropped). The budget is never
// relaxed.
func (e *Engine) RecommendRestaurantsByStation(ctx context.Context, district, station, category string, budget Budget) (out []ScoredPlace) {
	const op = "restaurants"
	defer e.guard(ctx, op, &out)()

	scoped := runCascade(e.catalog.Places(models.KindRestaurant),
		scopeStage(district, station, e.config.StationMinMatches))

	thresholds := e.config.RestaurantDistrict
	if strings.TrimSpace(station) != "" && !stationFellBack(scoped.relaxed) {
		thresholds = e.config.RestaurantStation
	}

	var stages []stage
	if f, ok := budget.filter(); ok {
		stages = append(stages, stage{name: "budget", filter: f})
	}
	if s, ok := categoryStage(category); ok {
		stages = append(stages, s)
	}
	stages = append(stages, thresholdStage(thresholds))

	res := runCascade(scoped.places, stages...)
	relaxed := append(scoped.relaxed, res.relaxed...)

	out = rank(res.places, e.strategy, e.config.Limit)
	e.record(ctx, op, relaxed, len(out))
	return out
}

// categoryStage filters by food category and is dropped when it empties the
// set. Random categories get no stage.
func categoryStage(category string) (stage, bool) {
	if IsRandomCategory(category) {
		return stage{}, false
	}
	return stage{
		name:   "category",
		filter: inCategory(strings.TrimSpace(category)),
		relax:  []relaxation{{name: "category_dropped", apply: keep}},
	}, true
}
