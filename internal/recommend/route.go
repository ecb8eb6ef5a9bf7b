// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/models"
)

// ErrSelectionIncomplete is returned when a route is requested without one
// place per category.
var ErrSelectionIncomplete = errors.New("restaurant, attraction and cafe must all be selected")

// ErrUnknownLocation is returned when a selected place has no coordinates.
var ErrUnknownLocation = errors.New("a selected place has no location")

// Distances are walking distances in meters.
type Distances struct {
	FirstSegment  float64 `json:"first_segment"`
	SecondSegment float64 `json:"second_segment"`
	Total         float64 `json:"total"`
}

// Route is the visit order of a restaurant, an activity and a café.
type Route struct {
	Stops     [3]models.Place `json:"route"`
	Distances Distances       `json:"distances"`
}

// ComposeRoute orders the three stops starting at the restaurant and visiting
// the nearer of the activity and the café next. Ties go to the activity. For
// three points with a fixed start this greedy order is the shortest one.
// A place without coordinates is infinitely far away.
func ComposeRoute(restaurant, activity, cafe *models.Place) (*Route, error) {
	if restaurant == nil || activity == nil || cafe == nil {
		return nil, ErrSelectionIncomplete
	}

	anchor := restaurant.Point()
	toActivity := geo.HaversineDistance(anchor, activity.Point())
	toCafe := geo.HaversineDistance(anchor, cafe.Point())

	second, third := activity, cafe
	first := toActivity
	if toCafe < toActivity {
		second, third = cafe, activity
		first = toCafe
	}

	between := geo.HaversineDistance(second.Point(), third.Point())
	return &Route{
		Stops: [3]models.Place{*restaurant, *second, *third},
		Distances: Distances{
			FirstSegment:  first,
			SecondSegment: between,
			Total:         first + between,
		},
	}, nil
}

// RouteRequest carries one selected place per category.
type RouteRequest struct {
	Restaurant *models.Place `json:"restaurant"`
	Attraction *models.Place `json:"attraction"`
	Cafe       *models.Place `json:"cafe"`
}

// RouteResult is either a route with its distances or an error message.
type RouteResult struct {
	Route     []models.Place `json:"route,omitempty"`
	Distances *Distances     `json:"distances,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Route messages.
const (
	msgSelectionIncomplete = "맛집, 놀거리, 카페를 모두 선택해야 합니다."
	msgUnknownLocation     = "위치 정보가 없는 장소가 있습니다."
)

// RecommendOptimizedRoute composes the route for req. Missing places and
// places without coordinates produce an error result.
func (e *Engine) RecommendOptimizedRoute(ctx context.Context, req RouteRequest) RouteResult {
	start := time.Now()
	e.requestCount.Add(1)
	defer func() { metrics.RecordRecommend("route", time.Since(start)) }()

	route, err := ComposeRoute(req.Restaurant, req.Attraction, req.Cafe)
	if err == nil && math.IsInf(route.Distances.Total, 0) {
		err = ErrUnknownLocation
	}
	if err != nil {
		e.errorCount.Add(1)
		e.requestLogger(ctx).Debug().Err(err).Msg("route not composed")
		if errors.Is(err, ErrSelectionIncomplete) {
			return RouteResult{Error: msgSelectionIncomplete}
		}
		return RouteResult{Error: msgUnknownLocation}
	}

	return RouteResult{
		Route:     route.Stops[:],
		Distances: &route.Distances,
	}
}
