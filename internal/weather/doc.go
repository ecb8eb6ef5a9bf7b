// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package weather turns district weather readings into outdoor/indoor advisories.

An Advisor applies a fixed priority chain to the most recent reading of a
district:

 1. precipitation above the rain threshold: 비, indoor
 2. discomfort index above the heat threshold: 무더움, indoor
 3. sky status containing 흐림 or 구름많음: 흐림, outdoor
 4. UV index above the UV threshold: 자외선 주의, indoor
 5. otherwise: 맑음, outdoor

Readings come from a Source. Lookup guards the source with a sony/gobreaker
circuit breaker and degrades to DefaultAdvisory (정보 없음, outdoor) whenever
the source errors, the circuit is open, or the district has no data.

Usage:

	advisor := weather.NewAdvisor(weather.DefaultThresholds())
	lookup := weather.NewLookup(db, advisor, weather.DefaultBreakerSettings(), 3*time.Second, logger)
	adv := lookup.Advisory(ctx, "강남구")
*/
package weather
