// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package metrics declares the Prometheus collectors exported at /metrics.

Collectors are package-level variables registered with promauto, grouped by
concern:

  - ojakgyo_db_*: place store query latency and errors, labelled by driver
  - ojakgyo_catalog_*: collection sizes, skipped rows and load time
  - ojakgyo_recommend_*: engine latency, cascade relaxations, empty selections
  - ojakgyo_weather_*: lookup outcomes and issued advisories
  - ojakgyo_api_*: HTTP request counts, latency and in-flight requests
  - ojakgyo_circuit_breaker_*: breaker state and transitions

The Record* helpers keep label handling in one place.
*/
package metrics
