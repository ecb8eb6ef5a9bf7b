// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"
	"math"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/models"
)

// RecommendCafes ranks the cafés of district. With a reference point the
// ranking key is score - CafeDistanceWeight × distance in meters.
func (e *Engine) RecommendCafes(ctx context.Context, district string, ref *geo.Point) []ScoredPlace {
	return e.RecommendCafesByStation(ctx, district, "", ref)
}

// RecommendCafesByStation ranks cafés near station, or in the whole district
// when the station has too few.
func (e *Engine) RecommendCafesByStation(ctx context.Context, district, station string, ref *geo.Point) (out []ScoredPlace) {
	const op = "cafes"
	defer e.guard(ctx, op, &out)()

	res := runCascade(e.catalog.Places(models.KindCafe),
		scopeStage(district, station, e.config.StationMinMatches),
		thresholdStage(e.config.Cafe),
	)

	if ref == nil || !ref.Valid() {
		out = rank(res.places, e.strategy, e.config.Limit)
		e.record(ctx, op, res.relaxed, len(out))
		return out
	}

	scored := make([]ScoredPlace, len(res.places))
	for i := range res.places {
		p := res.places[i]
		score := e.strategy.Score(&p)
		sp := ScoredPlace{Place: p, Score: score}

		d := geo.HaversineDistance(ref, p.Point())
		if math.IsInf(d, 1) {
			sp.key = math.Inf(-1)
		} else {
			adjusted := score - e.config.CafeDistanceWeight*d
			sp.key = adjusted
			sp.AdjustedScore = &adjusted
			sp.Distance = &d
		}
		scored[i] = sp
	}

	out = sortAndTruncate(scored, e.config.Limit)
	e.record(ctx, op, res.relaxed, len(out))
	return out
}
