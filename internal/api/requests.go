// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/recommend"
	"github.com/tomtom215/ojakgyo/internal/validation"
)

// maxBodyBytes bounds request bodies. Route requests carry three places, so
// 64 KiB leaves generous headroom.
const maxBodyBytes = 64 << 10

// defaultBudgetRange applies when a request names neither bounds nor a code.
const defaultBudgetRange = 2

// recommendRequest is the body of POST /api/recommend.
type recommendRequest struct {
	District     string `json:"district" validate:"required,seoul_district"`
	Station      string `json:"station,omitempty" validate:"omitempty,max=100"`
	FoodCategory string `json:"food_category,omitempty" validate:"omitempty,max=50"`
	validation.Budget
}

// normalize trims the free-text fields before validation.
func (req *recommendRequest) normalize() {
	req.District = strings.TrimSpace(req.District)
	req.Station = strings.TrimSpace(req.Station)
	req.FoodCategory = strings.TrimSpace(req.FoodCategory)
}

// budget resolves the request budget. Both bounds select an explicit range;
// otherwise the legacy code applies, defaulting to 2.
func (req *recommendRequest) budget() recommend.Budget {
	if req.MinBudget != nil && req.MaxBudget != nil {
		return recommend.ExplicitBudget(*req.MinBudget, *req.MaxBudget)
	}
	code := defaultBudgetRange
	if req.BudgetRange != nil {
		code = *req.BudgetRange
	}
	return recommend.RangeBudget(code)
}

func (req *recommendRequest) courseRequest() recommend.CourseRequest {
	category := req.FoodCategory
	if category == "" {
		category = recommend.RandomCategory
	}
	return recommend.CourseRequest{
		District:     req.District,
		Station:      req.Station,
		FoodCategory: category,
		Budget:       req.budget(),
	}
}

// routeRequest is the body of POST /api/route.
type routeRequest struct {
	Restaurant *models.Place `json:"restaurant"`
	Attraction *models.Place `json:"attraction"`
	Cafe       *models.Place `json:"cafe"`
}

func (req *routeRequest) toEngine() recommend.RouteRequest {
	return recommend.RouteRequest{
		Restaurant: req.Restaurant,
		Attraction: req.Attraction,
		Cafe:       req.Cafe,
	}
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
