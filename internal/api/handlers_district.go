// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/logging"
)

// districtParam returns the {district} URL parameter, writing a 400 and
// returning false when it is not one of the Seoul districts.
func districtParam(rw *ResponseWriter, r *http.Request) (string, bool) {
	district := strings.TrimSpace(chi.URLParam(r, "district"))
	if !geo.IsDistrict(district) {
		rw.ValidationError("district must be one of the 25 Seoul districts", map[string]interface{}{
			"field": "district",
			"value": district,
		})
		return "", false
	}
	return district, true
}

// Weather returns the weather advisory of a district.
//
// GET /api/weather/{district}
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	district, ok := districtParam(rw, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	rw.Success(h.engine.WeatherRecommendation(ctx, district))
}

// District returns the latest weather reading of a district with its place counts.
//
// GET /api/district/{district}
func (h *Handler) District(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	district, ok := districtParam(rw, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	rw.Success(h.engine.DistrictSummary(ctx, district))
}

// stationList is the body of the stations endpoint.
type stationList struct {
	District string            `json:"district"`
	Stations []dataset.Station `json:"stations"`
}

// Stations returns the best rated stations of a district, or 404 with an
// empty list when the district has none.
//
// GET /api/stations/{district}
func (h *Handler) Stations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	district, ok := districtParam(rw, r)
	if !ok {
		return
	}

	stations, err := h.engine.Stations(r.Context(), district)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("district", district).Msg("Failed to list stations")
		rw.InternalError("Failed to list stations")
		return
	}

	body := stationList{District: district, Stations: stations}
	if len(stations) == 0 {
		body.Stations = []dataset.Station{}
		rw.NotFound("No stations found for district", body)
		return
	}
	rw.Success(body)
}
