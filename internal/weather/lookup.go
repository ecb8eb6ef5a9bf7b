// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/ojakgyo/internal/metrics"
)

// Source provides the latest reading for a district. A nil reading with a nil
// error means the district has no data.
type Source interface {
	LatestWeather(ctx context.Context, district string) (*Reading, error)
}

// BreakerSettings configures the circuit breaker around a Source.
type BreakerSettings struct {
	Name         string
	MaxRequests  uint32        // requests allowed in half-open state
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open-state duration before half-open
	MinRequests  uint32        // requests needed before the breaker may trip
	FailureRatio float64
}

// DefaultBreakerSettings returns the breaker defaults.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "weather-source",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Lookup fetches readings through a circuit breaker and converts them into
// advisories. It never fails: errors, an open circuit and missing readings all
// degrade to the default advisory.
//
// The breaker uses wall-clock time for its interval and timeout; tests that
// exercise recovery should use short durations.
type Lookup struct {
	source  Source
	advisor *Advisor
	cb      *gobreaker.CircuitBreaker[*Reading]
	name    string
	timeout time.Duration
	logger  zerolog.Logger

	cache       *gocache.Cache
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// CacheStats counts reading cache lookups.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int   `json:"keys"`
}

// NewLookup wraps source with a circuit breaker. A zero timeout means the
// caller's context is the only deadline.
func NewLookup(source Source, advisor *Advisor, settings BreakerSettings, timeout time.Duration, logger zerolog.Logger) *Lookup {
	if advisor == nil {
		advisor = NewAdvisor(DefaultThresholds())
	}
	if settings.Name == "" {
		settings.Name = DefaultBreakerSettings().Name
	}

	l := &Lookup{
		source:  source,
		advisor: advisor,
		name:    settings.Name,
		timeout: timeout,
		logger:  logger.With().Str("component", "weather").Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(0)

	l.cb = gobreaker.NewCircuitBreaker[*Reading](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio
			if shouldTrip {
				l.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			l.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// A caller giving up is not a source failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return l
}

// Advisor returns the advisor used to evaluate readings.
func (l *Lookup) Advisor() *Advisor {
	return l.advisor
}

// EnableCache keeps successful readings, including "no data", per district
// for ttl. Errors are never cached. Call it before the first lookup.
func (l *Lookup) EnableCache(ttl time.Duration) {
	if ttl > 0 {
		l.cache = gocache.New(ttl, 2*ttl)
	}
}

// CacheStats returns the reading cache counters; ok is false when caching is off.
// Keys may include expired entries the janitor has not removed yet.
func (l *Lookup) CacheStats() (stats CacheStats, ok bool) {
	if l.cache == nil {
		return CacheStats{}, false
	}
	return CacheStats{
		Hits:   l.cacheHits.Load(),
		Misses: l.cacheMisses.Load(),
		Keys:   l.cache.ItemCount(),
	}, true
}

func (l *Lookup) cached(district string) (*Reading, bool) {
	if v, found := l.cache.Get(district); found {
		if reading, ok := v.(*Reading); ok {
			l.cacheHits.Add(1)
			metrics.WeatherCacheLookups.WithLabelValues("hit").Inc()
			return reading, true
		}
	}
	l.cacheMisses.Add(1)
	metrics.WeatherCacheLookups.WithLabelValues("miss").Inc()
	return nil, false
}

// State returns the breaker state as "closed", "half-open" or "open".
func (l *Lookup) State() string {
	return stateToString(l.cb.State())
}

// Reading returns the latest reading for district, or nil when there is none.
func (l *Lookup) Reading(ctx context.Context, district string) (*Reading, error) {
	if l.source == nil {
		metrics.WeatherLookups.WithLabelValues("missing").Inc()
		return nil, nil
	}

	if l.cache != nil {
		if reading, ok := l.cached(district); ok {
			metrics.WeatherLookups.WithLabelValues("cached").Inc()
			return reading, nil
		}
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	reading, err := l.cb.Execute(func() (*Reading, error) {
		return l.source.LatestWeather(ctx, district)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(l.name, "rejected").Inc()
			metrics.WeatherLookups.WithLabelValues("rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(l.name, "failure").Inc()
			metrics.WeatherLookups.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(l.name, "success").Inc()
	if l.cache != nil {
		l.cache.Set(district, reading, gocache.DefaultExpiration)
	}
	if reading == nil {
		metrics.WeatherLookups.WithLabelValues("missing").Inc()
	} else {
		metrics.WeatherLookups.WithLabelValues("hit").Inc()
	}
	return reading, nil
}

// Advisory returns the advisory for district.
func (l *Lookup) Advisory(ctx context.Context, district string) Advisory {
	reading, err := l.Reading(ctx, district)
	if err != nil {
		l.logger.Warn().Err(err).Str("district", district).Msg("Weather lookup failed, using default advisory")
	}

	adv := l.advisor.Advise(district, reading)
	metrics.RecordAdvisory(adv.Status, adv.RecommendOutdoor)
	return adv
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
