// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"

	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// desiredActivityType is indoor when the advisory advises against going out.
func desiredActivityType(adv weather.Advisory) models.ActivityType {
	if adv.RecommendOutdoor {
		return models.ActivityOutdoor
	}
	return models.ActivityIndoor
}

// RecommendAttractions ranks the activities of district that suit the
// weather. District matches of the desired type come first; when there are
// fewer than the limit, matching activities from other districts fill the
// list. When neither exists the district's mixed set is ranked. A district
// without any activity gets an empty list.
func (e *Engine) RecommendAttractions(ctx context.Context, district string, adv weather.Advisory) (out []ScoredPlace) {
	const op = "attractions"
	defer e.guard(ctx, op, &out)()

	local := e.catalog.InDistrict(models.KindActivity, district)
	if len(local) == 0 {
		out = []ScoredPlace{}
		e.record(ctx, op, nil, 0)
		return out
	}

	desired := desiredActivityType(adv)
	var relaxed []string

	out = rank(ofActivityType(desired)(local), e.strategy, e.config.Limit)
	if len(out) < e.config.Limit {
		others := where(func(p *models.Place) bool {
			return p.District != district && p.ActivityType == desired
		})(e.catalog.Places(models.KindActivity))
		if len(others) > 0 {
			relaxed = append(relaxed, "citywide_expansion")
			out = append(out, rank(others, e.strategy, e.config.Limit-len(out))...)
		}
	}
	if len(out) == 0 {
		relaxed = append(relaxed, "activity_type_mixed")
		out = rank(local, e.strategy, e.config.Limit)
	}

	e.record(ctx, op, relaxed, len(out))
	return out
}

// RecommendAttractionsByStation ranks activities near station, or in the
// whole district when the station has too few. On indoor advisories the
// indoor subset is used only when it is large enough; otherwise the mixed set
// is kept.
func (e *Engine) RecommendAttractionsByStation(ctx context.Context, district, station string, adv weather.Advisory) (out []ScoredPlace) {
	const op = "attractions_station"
	defer e.guard(ctx, op, &out)()

	stages := []stage{scopeStage(district, station, e.config.StationMinMatches)}
	if !adv.RecommendOutdoor {
		stages = append(stages, stage{
			name:    "indoor",
			filter:  ofActivityType(models.ActivityIndoor),
			minSize: e.config.IndoorMinMatches,
			relax:   []relaxation{{name: "indoor_mixed", apply: keep}},
		})
	}

	res := runCascade(e.catalog.Places(models.KindActivity), stages...)
	out = rank(res.places, e.strategy, e.config.Limit)
	e.record(ctx, op, res.relaxed, len(out))
	return out
}
