// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"net/http"

	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/validation"
)

// Recommend builds a date course for a district.
//
// POST /api/recommend
//
//	{"district": "강남구", "station": "강남역", "food_category": "한식",
//	 "min_budget": 10000, "max_budget": 30000}
//
// food_category defaults to 랜덤. Without both budget bounds the legacy
// budget_range code applies, defaulting to 2.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req.normalize()
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	courseReq := req.courseRequest()
	course := h.engine.CreateDateCourse(ctx, courseReq)
	if course.Error != "" {
		logging.Ctx(ctx).Error().
			Str("district", courseReq.District).
			Str("station", courseReq.Station).
			Str("reason", course.Error).
			Msg("Date course failed")
		rw.ErrorWithDetails(http.StatusInternalServerError, ErrCodeInternalError, course.Error, course)
		return
	}

	course.BudgetDisplay = budgetDisplay(courseReq.Budget)
	rw.Success(course)
}

// Route orders a restaurant, an attraction and a café into the shortest walk
// starting at the restaurant.
//
// POST /api/route
//
//	{"restaurant": {...}, "attraction": {...}, "cafe": {...}}
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req routeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}

	result := h.engine.RecommendOptimizedRoute(r.Context(), req.toEngine())
	if result.Error != "" {
		rw.Error(http.StatusBadRequest, ErrCodeRouteIncomplete, result.Error)
		return
	}
	rw.Success(result)
}
