// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

// Package recommend selects restaurants, attractions and cafés for a date
// course and orders the chosen stops into a walking route.
//
// # Selection
//
// Every selector narrows a catalog collection through a cascade of named
// stages. A stage whose filter leaves too few places is relaxed against its
// own input, so a district with data always produces candidates:
//
//   - scope: places at the station (case-insensitive), or the district when
//     fewer than StationMinMatches are at the station
//   - budget: explicit [min, max] won, else the legacy 1-4 price tier; never relaxed
//   - category: substring match, dropped when nothing matches; skipped for 랜덤
//   - threshold: minimum evaluation score, then the relaxed minimum, then none
//
// Relaxed stages are logged and counted in the ojakgyo_recommend_relaxations_total
// metric.
//
// Attractions follow the weather advisory instead of budget and category:
// indoor when outdoor activities are discouraged, outdoor otherwise. Cafés
// are ranked by score minus a per-meter penalty for distance to the best
// restaurant.
//
// # Scoring
//
// Two strategies are available:
//
//   - evaluation (default): rating × ln(reviews + 1) for every kind
//   - weighted: the legacy blend of rating, normalized review count and food
//     preference for restaurants; normalized review count for attractions;
//     rating for cafés
//
// # Usage
//
//	catalog, err := dataset.Load(ctx, db, logger)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalog, lookup, logger)
//
//	course := engine.CreateDateCourse(ctx, recommend.CourseRequest{
//	    District:     "마포구",
//	    FoodCategory: "국밥류",
//	    Budget:       recommend.RangeBudget(2),
//	})
//
// # Thread Safety
//
// Engine is safe for concurrent use. The catalog is never modified and all
// per-request values live in request-local slices.
package recommend
