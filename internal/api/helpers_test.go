// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ojakgyo/internal/dataset"
	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/middleware"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/recommend"
)

// testRows is a small 강남구 data set. Every place clears the primary
// evaluation thresholds (4.5 with 1000 reviews scores 31.09).
func testRows() dataset.StaticSource {
	place := func(name, category string, lat, lon float64) models.Row {
		return models.Row{
			"name":      name,
			"address":   "서울특별시 강남구 테헤란로 1",
			"category":  category,
			"score":     4.5,
			"review":    int64(1000),
			"latitude":  lat,
			"longitude": lon,
			"station":   "강남역",
		}
	}

	restaurant := place("역삼 한우", "육류구이류", 37.4981, 127.0276)
	restaurant["price"] = int64(15000)
	expensive := place("강남 오마카세", "일식류", 37.4990, 127.0280)
	expensive["price"] = int64(45000)

	indoor := place("강남 보드게임카페", "보드게임", 37.4995, 127.0290)
	indoor["type"] = int64(0)
	outdoor := place("선릉 산책로", "공원", 37.5045, 127.0490)
	outdoor["type"] = int64(1)

	return dataset.StaticSource{
		models.CollectionRestaurant: {restaurant, expensive},
		models.CollectionActivity:   {indoor, outdoor},
		models.CollectionCafe:       {place("테헤란 커피", "카페", 37.4985, 127.0279)},
		models.CollectionWeather: {{
			"gu": "강남구", "station": "강남역", "datetime": "2026-05-01 12:00:00",
			"temp": 21.0, "precipitation": 0.0, "humidity": 45.0,
			"sky_stts": "맑음", "uv_idx": 3.0, "air_idx": "좋음",
		}},
		models.CollectionStationScore: {{"station": "강남역", "star": 4.2}},
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testServerOptions struct {
	store      Pinger
	middleware *ChiMiddlewareConfig
}

// newTestServer builds the full router over testRows.
func newTestServer(t *testing.T, opts testServerOptions) http.Handler {
	t.Helper()

	logger := logging.NewTestLogger(io.Discard)
	catalog, err := dataset.Load(context.Background(), testRows(), logger)
	if err != nil {
		t.Fatalf("dataset.Load() error = %v", err)
	}
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalog, nil, logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mwCfg := opts.middleware
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	perfMon := middleware.NewPerformanceMonitor(100, 0, logger)
	handler := NewHandler(engine, opts.store, perfMon, 5*time.Second)
	return NewRouter(handler, NewChiMiddleware(mwCfg)).SetupChi()
}

// testResponse mirrors APIResponse with the payload left raw.
type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func decodeData(t *testing.T, resp testResponse, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

var errPingFailed = errors.New("connection refused")
