// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package middleware provides chi-compatible HTTP middleware shared by the API.

  - RequestID: X-Request-ID propagation and logging context
  - PrometheusMetrics: request count, duration and in-flight gauge per route pattern
  - PerformanceMonitor: sliding-window latency statistics and slow request logging

All middleware has the func(http.Handler) http.Handler shape and is mounted
with chi's r.Use. PrometheusMetrics and PerformanceMonitor label requests by
route pattern, so they must be mounted on the router rather than wrapped
around it.
*/
package middleware
