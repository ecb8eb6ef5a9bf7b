// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/ojakgyo/internal/models"
)

// Strategy assigns the ranking score of a place.
type Strategy interface {
	Name() string
	Score(p *models.Place) float64
}

// NewStrategy returns the named strategy.
func NewStrategy(name string, prefs PreferenceTable) (Strategy, error) {
	switch name {
	case StrategyEvaluation, "":
		return evaluationStrategy{}, nil
	case StrategyWeighted:
		return weightedStrategy{prefs: prefs}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// evaluationStrategy ranks every kind by rating × ln(reviews + 1).
type evaluationStrategy struct{}

func (evaluationStrategy) Name() string { return StrategyEvaluation }

func (evaluationStrategy) Score(p *models.Place) float64 {
	return p.EvaluationScore
}

// weightedStrategy is the legacy ranking: restaurants blend rating, review
// volume and food preference; activities rank by review volume; cafés by
// rating.
type weightedStrategy struct {
	prefs PreferenceTable
}

func (weightedStrategy) Name() string { return StrategyWeighted }

func (s weightedStrategy) Score(p *models.Place) float64 {
	switch p.Kind {
	case models.KindRestaurant:
		return p.RatingValue()*0.4 + p.NormalizedReviews*0.3 + s.prefs.Score(p.Category)*0.3
	case models.KindActivity:
		return p.NormalizedReviews
	default:
		return p.RatingValue()
	}
}

// ScoredPlace is a place ranked for one request.
type ScoredPlace struct {
	models.Place

	// Score is the strategy score.
	Score float64 `json:"total_score"`

	// AdjustedScore and Distance are set for cafés ranked against a
	// reference point with a known distance.
	AdjustedScore *float64 `json:"score_with_distance,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`

	key float64
}

// rank scores places, sorts them by descending key and truncates to limit.
// Ties keep catalog order.
func rank(places []models.Place, s Strategy, limit int) []ScoredPlace {
	out := make([]ScoredPlace, len(places))
	for i := range places {
		score := s.Score(&places[i])
		out[i] = ScoredPlace{Place: places[i], Score: score, key: score}
	}
	return sortAndTruncate(out, limit)
}

func sortAndTruncate(out []ScoredPlace, limit int) []ScoredPlace {
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].key > out[j].key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
