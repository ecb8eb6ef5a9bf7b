// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/metrics"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// CourseRequest describes a date course.
type CourseRequest struct {
	District     string `json:"district"`
	Station      string `json:"station,omitempty"`
	FoodCategory string `json:"food_category,omitempty"`
	Budget
}

// Course is a weather advisory with ranked restaurants, attractions and
// cafés. A failed course carries only Error, District and Station.
type Course struct {
	WeatherInfo   weather.Advisory `json:"weather_info"`
	District      string           `json:"district"`
	Station       string           `json:"station,omitempty"`
	BudgetDisplay string           `json:"budget_display,omitempty"`
	Restaurants   []ScoredPlace    `json:"restaurants"`
	Attractions   []ScoredPlace    `json:"attractions"`
	Cafes         []ScoredPlace    `json:"cafes"`
	Error         string           `json:"error,omitempty"`
}

// courseError is the JSON shape of a failed course.
type courseError struct {
	Error    string `json:"error"`
	District string `json:"district"`
	Station  string `json:"station,omitempty"`
}

// course is Course without its MarshalJSON method.
type course Course

// MarshalJSON encodes failed courses as {error, district, station}.
func (c Course) MarshalJSON() ([]byte, error) {
	if c.Error != "" {
		return json.Marshal(courseError{Error: c.Error, District: c.District, Station: c.Station})
	}
	return json.Marshal(course(c))
}

const (
	msgDistrictRequired = "지역(구)을 선택해야 합니다."
	msgCourseFailed     = "데이트 코스를 추천하는 중 오류가 발생했습니다."
)

// CreateDateCourse looks up the advisory of the district and selects
// restaurants, attractions and cafés. Cafés are ranked by distance to the
// best restaurant when it has coordinates. With a station every selector uses
// its station variant.
func (e *Engine) CreateDateCourse(ctx context.Context, req CourseRequest) (c Course) {
	start := time.Now()
	e.requestCount.Add(1)
	defer func() { metrics.RecordRecommend("course", time.Since(start)) }()

	district := strings.TrimSpace(req.District)
	station := strings.TrimSpace(req.Station)
	if district == "" {
		e.errorCount.Add(1)
		return Course{Error: msgDistrictRequired, Station: station}
	}

	defer func() {
		if r := recover(); r != nil {
			e.errorCount.Add(1)
			metrics.RecommendErrors.WithLabelValues("course").Inc()
			e.requestLogger(ctx).Error().Interface("panic", r).Str("district", district).Msg("date course failed")
			c = Course{Error: msgCourseFailed, District: district, Station: station}
		}
	}()

	category := strings.TrimSpace(req.FoodCategory)
	if category == "" {
		category = RandomCategory
	}

	adv := e.WeatherRecommendation(ctx, district)

	c = Course{
		WeatherInfo: adv,
		District:    district,
		Station:     station,
	}

	if station != "" {
		c.Restaurants = e.RecommendRestaurantsByStation(ctx, district, station, category, req.Budget)
		c.Attractions = e.RecommendAttractionsByStation(ctx, district, station, adv)
	} else {
		c.Restaurants = e.RecommendRestaurants(ctx, district, category, req.Budget)
		c.Attractions = e.RecommendAttractions(ctx, district, adv)
	}

	var ref *geo.Point
	if len(c.Restaurants) > 0 {
		ref = c.Restaurants[0].Point()
	}
	if station != "" {
		c.Cafes = e.RecommendCafesByStation(ctx, district, station, ref)
	} else {
		c.Cafes = e.RecommendCafes(ctx, district, ref)
	}

	e.requestLogger(ctx).Debug().
		Str("district", district).
		Str("station", station).
		Int("restaurants", len(c.Restaurants)).
		Int("attractions", len(c.Attractions)).
		Int("cafes", len(c.Cafes)).
		Dur("duration", time.Since(start)).
		Msg("date course created")

	return c
}
