// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"strings"

	"github.com/tomtom215/ojakgyo/internal/models"
)

// filterFunc narrows a candidate set. It must return a new slice.
type filterFunc func([]models.Place) []models.Place

// relaxation is a named fallback applied to a stage's input.
type relaxation struct {
	name  string
	apply filterFunc
}

// stage is one step of a selection cascade. The filter result is accepted
// when it holds at least minSize places (1 when zero); otherwise the
// relaxations are tried in order against the same input and the first
// acceptable one wins. When none is acceptable the last relaxation's result
// is used.
type stage struct {
	name    string
	filter  filterFunc
	minSize int
	relax   []relaxation
}

// cascadeResult is the output of runCascade.
type cascadeResult struct {
	places  []models.Place
	relaxed []string
}

// runCascade applies stages in order. Relaxations are skipped for an empty
// input since no fallback can produce candidates from nothing.
func runCascade(input []models.Place, stages ...stage) cascadeResult {
	current := input
	var relaxed []string

	for _, st := range stages {
		need := max(st.minSize, 1)
		out := st.filter(current)
		if len(out) >= need || len(current) == 0 || len(st.relax) == 0 {
			current = out
			continue
		}

		for _, r := range st.relax {
			out = r.apply(current)
			relaxed = append(relaxed, r.name)
			if len(out) >= need {
				break
			}
		}
		current = out
	}

	return cascadeResult{places: current, relaxed: relaxed}
}

// keep returns a copy of input. It is the relaxation that drops a filter.
func keep(input []models.Place) []models.Place {
	out := make([]models.Place, len(input))
	copy(out, input)
	return out
}

func where(pred func(*models.Place) bool) filterFunc {
	return func(in []models.Place) []models.Place {
		var out []models.Place
		for i := range in {
			if pred(&in[i]) {
				out = append(out, in[i])
			}
		}
		return out
	}
}

func inDistrict(district string) filterFunc {
	return where(func(p *models.Place) bool { return p.District == district })
}

func atStation(station string) filterFunc {
	needle := strings.ToLower(strings.TrimSpace(station))
	return where(func(p *models.Place) bool {
		return needle != "" && strings.Contains(strings.ToLower(p.Station), needle)
	})
}

func inCategory(category string) filterFunc {
	needle := strings.ToLower(category)
	return where(func(p *models.Place) bool {
		return strings.Contains(strings.ToLower(p.Category), needle)
	})
}

func minEvaluation(threshold float64) filterFunc {
	return where(func(p *models.Place) bool { return p.EvaluationScore >= threshold })
}

func ofActivityType(t models.ActivityType) filterFunc {
	return where(func(p *models.Place) bool { return p.ActivityType == t })
}

// thresholdStage keeps places whose evaluation score clears t.Primary, then
// t.Relaxed, then keeps the whole input.
func thresholdStage(t Thresholds) stage {
	return stage{
		name:   "threshold",
		filter: minEvaluation(t.Primary),
		relax: []relaxation{
			{name: "threshold_relaxed", apply: minEvaluation(t.Relaxed)},
			{name: "threshold_dropped", apply: keep},
		},
	}
}

// scopeStage scopes a collection to a station, falling back to the district
// when fewer than minMatches places are at the station. Without a station it
// scopes to the district directly.
func scopeStage(district, station string, minMatches int) stage {
	if strings.TrimSpace(station) == "" {
		return stage{name: "district", filter: inDistrict(district)}
	}
	return stage{
		name:    "station",
		filter:  atStation(station),
		minSize: minMatches,
		relax:   []relaxation{{name: "station_fallback", apply: inDistrict(district)}},
	}
}

// stationFellBack reports whether a cascade abandoned the station scope.
func stationFellBack(relaxed []string) bool {
	for _, r := range relaxed {
		if r == "station_fallback" {
			return true
		}
	}
	return false
}
