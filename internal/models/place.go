// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package models

import (
	"math"

	"github.com/tomtom215/ojakgyo/internal/geo"
)

// Kind identifies which collection a place belongs to.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindActivity   Kind = "activity"
	KindCafe       Kind = "cafe"
)

// Collection names as stored in the place database.
const (
	CollectionRestaurant   = "restaurant"
	CollectionActivity     = "enjoy"
	CollectionCafe         = "cafe"
	CollectionWeather      = "spot"
	CollectionStationScore = "score"
)

// Collection returns the source collection name for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindRestaurant:
		return CollectionRestaurant
	case KindActivity:
		return CollectionActivity
	case KindCafe:
		return CollectionCafe
	default:
		return ""
	}
}

// ActivityType classifies an activity as indoor or outdoor.
type ActivityType string

const (
	ActivityIndoor  ActivityType = "실내"
	ActivityOutdoor ActivityType = "실외"
	ActivityUnknown ActivityType = "정보 없음"
)

// ActivityTypeFromCode maps the raw type column (0 indoor, 1 outdoor).
func ActivityTypeFromCode(code *int64) ActivityType {
	if code == nil {
		return ActivityUnknown
	}
	switch *code {
	case 0:
		return ActivityIndoor
	case 1:
		return ActivityOutdoor
	default:
		return ActivityUnknown
	}
}

// Place is a restaurant, activity or café record. Places are built once by the
// dataset loader and never modified afterwards; callers copy them by value.
type Place struct {
	Kind      Kind     `json:"kind"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Category  string   `json:"category,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Rating    *float64 `json:"score"`
	Reviews   *int64   `json:"review"`
	Station   string   `json:"station,omitempty"`

	// Restaurants only.
	Price *int64 `json:"price,omitempty"`

	// Activities only.
	ActivityType ActivityType `json:"activity_type,omitempty"`

	// Derived at load time.
	District          string  `json:"district"`
	EvaluationScore   float64 `json:"evaluation_score"`
	PriceBucket       int     `json:"price_bucket,omitempty"`
	PriceRange        string  `json:"price_range,omitempty"`
	NormalizedReviews float64 `json:"normalized_reviews"`
}

// Point returns the place coordinate, or nil when latitude or longitude is missing.
func (p *Place) Point() *geo.Point {
	return geo.NewPoint(p.Latitude, p.Longitude)
}

// RatingValue returns the rating, or 0 when missing.
func (p *Place) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// EvaluationScore returns rating × ln(reviews + 1). A missing rating or review
// count, or a negative review count, scores 0.
func EvaluationScore(rating *float64, reviews *int64) float64 {
	if rating == nil || reviews == nil || *reviews < 0 {
		return 0
	}
	score := *rating * math.Log(float64(*reviews)+1)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// PriceBucket returns the legacy price tier 1-4 of price, or 0 when the price
// is missing or not positive. Tier 4 is open-ended.
func PriceBucket(price *int64) int {
	switch {
	case price == nil || *price <= 0:
		return 0
	case *price < 10000:
		return 1
	case *price < 20000:
		return 2
	case *price < 30000:
		return 3
	default:
		return 4
	}
}

var priceRangeLabels = [...]string{"정보 없음", "1만원 이하", "1-2만원", "2-3만원", "3-5만원"}

// PriceRangeLabel returns the display label of the legacy price tier.
func PriceRangeLabel(price *int64) string {
	return priceRangeLabels[PriceBucket(price)]
}

// BucketLabel returns the display label of a price tier, or the "정보 없음"
// label for codes outside 1-4.
func BucketLabel(bucket int) string {
	if bucket < 1 || bucket > 4 {
		return priceRangeLabels[0]
	}
	return priceRangeLabels[bucket]
}
