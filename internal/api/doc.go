// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package api provides the HTTP JSON API for Ojakgyo.

Endpoints:

  - POST /api/recommend: date course for a district (and optional station)
  - POST /api/route: visit order of a selected restaurant, attraction and café
  - GET /api/weather/{district}: weather advisory
  - GET /api/district/{district}: latest reading and place counts
  - GET /api/stations/{district}: best rated stations
  - GET /api/health: store connectivity, catalog sizes and request statistics
  - GET /metrics: Prometheus metrics

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}, "meta": {...}}

Usage Example:

	engine, _ := recommend.NewEngine(recommend.DefaultConfig(), catalog, lookup, logger)
	perfMon := middleware.NewPerformanceMonitor(1000, time.Second, logger)
	handler := api.NewHandler(engine, db, perfMon, 10*time.Second)
	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
	http.ListenAndServe(":8080", router.SetupChi())

Middleware order: request ID, real IP, panic recovery, CORS and gzip apply to
every route. Rate limiting, security headers, Prometheus metrics and the
performance monitor are mounted per route group so they see chi's route
pattern.
*/
package api
