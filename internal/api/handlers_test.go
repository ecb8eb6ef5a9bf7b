// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// courseBody is the subset of a course response the tests inspect.
type courseBody struct {
	District      string `json:"district"`
	Station       string `json:"station"`
	BudgetDisplay string `json:"budget_display"`
	WeatherInfo   struct {
		Status string `json:"weather_status"`
	} `json:"weather_info"`
	Restaurants []struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	} `json:"restaurants"`
	Attractions []struct {
		Name string `json:"name"`
	} `json:"attractions"`
	Cafes []struct {
		Name string `json:"name"`
	} `json:"cafes"`
}

func TestRecommend(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	tests := []struct {
		name        string
		body        map[string]interface{}
		wantDisplay string
		wantFirst   string
	}{
		{
			name:        "default budget range",
			body:        map[string]interface{}{"district": "강남구"},
			wantDisplay: "1-2만원",
			wantFirst:   "역삼 한우",
		},
		{
			name:        "explicit budget",
			body:        map[string]interface{}{"district": "강남구", "min_budget": 40000, "max_budget": 50000},
			wantDisplay: "4만원 ~ 5만원",
			wantFirst:   "강남 오마카세",
		},
		{
			name:        "station and category",
			body:        map[string]interface{}{"district": "강남구", "station": " 강남역 ", "food_category": "육류구이류", "budget_range": 2},
			wantDisplay: "1-2만원",
			wantFirst:   "역삼 한우",
		},
		{
			name:        "single bound falls back to range",
			body:        map[string]interface{}{"district": "강남구", "min_budget": 40000},
			wantDisplay: "1-2만원",
			wantFirst:   "역삼 한우",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodPost, "/api/recommend", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if !resp.Success {
				t.Fatal("success = false")
			}

			var course courseBody
			decodeData(t, resp, &course)
			if course.District != "강남구" {
				t.Errorf("district = %q", course.District)
			}
			if course.BudgetDisplay != tt.wantDisplay {
				t.Errorf("budget_display = %q, want %q", course.BudgetDisplay, tt.wantDisplay)
			}
			if course.WeatherInfo.Status != weather.StatusClear {
				t.Errorf("weather_status = %q", course.WeatherInfo.Status)
			}
			if len(course.Restaurants) == 0 || course.Restaurants[0].Name != tt.wantFirst {
				t.Errorf("restaurants = %+v, want first %q", course.Restaurants, tt.wantFirst)
			}
			if len(course.Attractions) == 0 || len(course.Cafes) == 0 {
				t.Errorf("attractions = %d, cafes = %d", len(course.Attractions), len(course.Cafes))
			}
		})
	}
}

func TestRecommend_Station(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	_, resp := do(t, h, http.MethodPost, "/api/recommend", map[string]interface{}{"district": "강남구", "station": " 강남역 "})

	var course courseBody
	decodeData(t, resp, &course)
	if course.Station != "강남역" {
		t.Errorf("station = %q, want trimmed 강남역", course.Station)
	}
}

func TestRecommend_BadRequests(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{"empty body", nil, ErrCodeBadRequest},
		{"malformed JSON", `{"district":`, ErrCodeBadRequest},
		{"missing district", map[string]interface{}{"station": "강남역"}, ErrCodeValidationFailed},
		{"unknown district", map[string]interface{}{"district": "해운대구"}, ErrCodeValidationFailed},
		{"budget range out of bounds", map[string]interface{}{"district": "강남구", "budget_range": 5}, ErrCodeValidationFailed},
		{"budget not a multiple of 5000", map[string]interface{}{"district": "강남구", "min_budget": 1500, "max_budget": 3000}, ErrCodeValidationFailed},
		{"budget on a 1000 won step", map[string]interface{}{"district": "강남구", "min_budget": 12000, "max_budget": 20000}, ErrCodeValidationFailed},
		{"min above max", map[string]interface{}{"district": "강남구", "min_budget": 30000, "max_budget": 10000}, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodPost, "/api/recommend", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.RequestID == "" || resp.Meta == nil || resp.Meta.RequestID != resp.Error.RequestID {
				t.Errorf("request ID not propagated: error %q meta %+v", resp.Error.RequestID, resp.Meta)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	at := func(name string, lat, lon float64) map[string]interface{} {
		return map[string]interface{}{"name": name, "latitude": lat, "longitude": lon}
	}

	t.Run("nearer stop second", func(t *testing.T) {
		body := map[string]interface{}{
			"restaurant": at("식당", 37.4981, 127.0276),
			"attraction": at("공원", 37.5045, 127.0490),
			"cafe":       at("카페", 37.4985, 127.0279),
		}
		rec, resp := do(t, h, http.MethodPost, "/api/route", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		var result struct {
			Route     []models.Place `json:"route"`
			Distances struct {
				First  float64 `json:"first_segment"`
				Second float64 `json:"second_segment"`
				Total  float64 `json:"total"`
			} `json:"distances"`
		}
		decodeData(t, resp, &result)

		got := make([]string, len(result.Route))
		for i, p := range result.Route {
			got[i] = p.Name
		}
		if strings.Join(got, ",") != "식당,카페,공원" {
			t.Errorf("route = %v, want [식당 카페 공원]", got)
		}
		if result.Distances.Total <= result.Distances.First || result.Distances.Total != result.Distances.First+result.Distances.Second {
			t.Errorf("distances = %+v", result.Distances)
		}
	})

	tests := []struct {
		name    string
		body    map[string]interface{}
		wantMsg string
	}{
		{
			name:    "missing cafe",
			body:    map[string]interface{}{"restaurant": at("식당", 37.49, 127.02), "attraction": at("공원", 37.50, 127.04)},
			wantMsg: "맛집, 놀거리, 카페를 모두 선택해야 합니다.",
		},
		{
			name: "place without coordinates",
			body: map[string]interface{}{
				"restaurant": at("식당", 37.49, 127.02),
				"attraction": map[string]interface{}{"name": "공원"},
				"cafe":       at("카페", 37.50, 127.04),
			},
			wantMsg: "위치 정보가 없는 장소가 있습니다.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodPost, "/api/route", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != ErrCodeRouteIncomplete || resp.Error.Message != tt.wantMsg {
				t.Errorf("error = %+v, want %s %q", resp.Error, ErrCodeRouteIncomplete, tt.wantMsg)
			}
		})
	}
}

func TestDistrictEndpoints(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	t.Run("weather", func(t *testing.T) {
		rec, resp := do(t, h, http.MethodGet, "/api/weather/강남구", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var adv weather.Advisory
		decodeData(t, resp, &adv)
		if adv.District != "강남구" || adv.Status != weather.StatusClear || !adv.RecommendOutdoor {
			t.Errorf("advisory = %+v", adv)
		}
	})

	t.Run("weather without readings", func(t *testing.T) {
		_, resp := do(t, h, http.MethodGet, "/api/weather/마포구", nil)
		var adv weather.Advisory
		decodeData(t, resp, &adv)
		if adv.Status != weather.StatusUnknown {
			t.Errorf("status = %q, want %q", adv.Status, weather.StatusUnknown)
		}
	})

	t.Run("district summary", func(t *testing.T) {
		rec, resp := do(t, h, http.MethodGet, "/api/district/강남구", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var summary struct {
			District string           `json:"district"`
			Weather  *weather.Reading `json:"weather"`
			Stats    struct {
				Restaurants int `json:"restaurants"`
				Attractions int `json:"attractions"`
				Cafes       int `json:"cafes"`
			} `json:"stats"`
		}
		decodeData(t, resp, &summary)
		if summary.Weather == nil || summary.Weather.Temperature != 21 {
			t.Errorf("weather = %+v", summary.Weather)
		}
		if summary.Stats.Restaurants != 2 || summary.Stats.Attractions != 2 || summary.Stats.Cafes != 1 {
			t.Errorf("stats = %+v", summary.Stats)
		}
	})

	t.Run("stations", func(t *testing.T) {
		rec, resp := do(t, h, http.MethodGet, "/api/stations/강남구", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var list stationList
		decodeData(t, resp, &list)
		if len(list.Stations) != 1 || list.Stations[0].Name != "강남역" || list.Stations[0].Star != 4.2 {
			t.Errorf("stations = %+v", list.Stations)
		}
	})

	t.Run("no stations", func(t *testing.T) {
		rec, resp := do(t, h, http.MethodGet, "/api/stations/마포구", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		details, ok := resp.Error.Details.(map[string]interface{})
		if !ok {
			t.Fatalf("details = %#v", resp.Error.Details)
		}
		if details["district"] != "마포구" {
			t.Errorf("details.district = %v", details["district"])
		}
		if stations, ok := details["stations"].([]interface{}); !ok || len(stations) != 0 {
			t.Errorf("details.stations = %#v, want []", details["stations"])
		}
	})

	for _, path := range []string{"/api/weather/부산", "/api/district/x", "/api/stations/강남"} {
		rec, resp := do(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest || resp.Error == nil || resp.Error.Code != ErrCodeValidationFailed {
			t.Errorf("%s: status = %d, error = %+v", path, rec.Code, resp.Error)
		}
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      Pinger
		wantStatus string
		wantDB     bool
	}{
		{"no store", nil, "healthy", true},
		{"store reachable", fakePinger{}, "healthy", true},
		{"store down", fakePinger{err: errPingFailed}, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, testServerOptions{store: tt.store})

			// One API request so the endpoint statistics are populated.
			do(t, h, http.MethodGet, "/api/weather/강남구", nil)

			rec, resp := do(t, h, http.MethodGet, "/api/health", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var health HealthStatus
			decodeData(t, resp, &health)
			if health.Status != tt.wantStatus || health.DatabaseConnected != tt.wantDB {
				t.Errorf("health = %+v", health)
			}
			if health.WeatherBreaker != "closed" {
				t.Errorf("weather_breaker = %q", health.WeatherBreaker)
			}
			if health.Catalog.Restaurants != 2 || health.Catalog.Cafes != 1 {
				t.Errorf("catalog = %+v", health.Catalog)
			}
			if len(health.Endpoints) != 1 || health.Endpoints[0].Endpoint != "GET /api/weather/{district}" {
				t.Errorf("endpoints = %+v", health.Endpoints)
			}
		})
	}
}

func TestRouter_Fallbacks(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	rec, resp := do(t, h, http.MethodGet, "/api/unknown", nil)
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, resp.Error)
	}

	rec, resp = do(t, h, http.MethodGet, "/api/recommend", nil)
	if rec.Code != http.StatusMethodNotAllowed || resp.Error == nil || resp.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method: status = %d, error = %+v", rec.Code, resp.Error)
	}

	rec, _ = do(t, h, http.MethodGet, "/api/weather/강남구", nil)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	h := newTestServer(t, testServerOptions{})

	do(t, h, http.MethodGet, "/api/weather/강남구", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ojakgyo_api_requests_total") {
		t.Error("api request counter not exported")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	h := newTestServer(t, testServerOptions{middleware: cfg})

	for i := 0; i < 2; i++ {
		if rec, _ := do(t, h, http.MethodGet, "/api/weather/강남구", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec, resp := do(t, h, http.MethodGet, "/api/weather/강남구", nil)
	if rec.Code != http.StatusTooManyRequests || resp.Error == nil || resp.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("status = %d, error = %+v, want 429", rec.Code, resp.Error)
	}

	// Health probes have their own, larger budget.
	if rec, _ := do(t, h, http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}
