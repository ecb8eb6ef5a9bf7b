// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package weather

import (
	"math"
	"strings"
	"time"

	"github.com/tomtom215/ojakgyo/internal/models"
)

// Advisory statuses.
const (
	StatusRain    = "비"
	StatusHot     = "무더움"
	StatusCloudy  = "흐림"
	StatusUV      = "자외선 주의"
	StatusClear   = "맑음"
	StatusUnknown = "정보 없음"
)

// Reading is the most recent observation for a district.
type Reading struct {
	District      string    `json:"district"`
	Time          time.Time `json:"datetime"`
	Temperature   float64   `json:"temp"`
	Precipitation float64   `json:"precipitation"`
	Humidity      float64   `json:"humidity"`
	Sky           string    `json:"sky_stts"`
	UV            float64   `json:"uv_idx"`
	AirIndex      string    `json:"air_idx,omitempty"`
	WindSpeed     *float64  `json:"wind_spd,omitempty"`
}

// Spot collection columns.
const (
	ColDistrict      = "gu"
	ColTime          = "datetime"
	ColTemperature   = "temp"
	ColPrecipitation = "precipitation"
	ColHumidity      = "humidity"
	ColSky           = "sky_stts"
	ColUV            = "uv_idx"
	ColAirIndex      = "air_idx"
	ColWindSpeed     = "wind_spd"
)

// Defaults used when a reading lacks a value.
const (
	DefaultTemperature = 25.0
	DefaultHumidity    = 50.0
)

// ReadingFromRow builds a Reading from a spot row. Missing temperature and
// humidity fall back to 25°C and 50%; other missing numbers are 0.
func ReadingFromRow(row models.Row) *Reading {
	return &Reading{
		District:      row.String(ColDistrict),
		Time:          row.Time(ColTime),
		Temperature:   valueOr(row.Float(ColTemperature), DefaultTemperature),
		Precipitation: valueOr(row.Float(ColPrecipitation), 0),
		Humidity:      valueOr(row.Float(ColHumidity), DefaultHumidity),
		Sky:           row.String(ColSky),
		UV:            valueOr(row.Float(ColUV), 0),
		AirIndex:      row.String(ColAirIndex),
		WindSpeed:     row.Float(ColWindSpeed),
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Advisory is the outdoor/indoor recommendation derived from a reading.
type Advisory struct {
	District         string  `json:"district"`
	Status           string  `json:"weather_status"`
	Rainfall         float64 `json:"rainfall"`
	DiscomfortIndex  float64 `json:"discomfort_index"`
	UVIndex          float64 `json:"solar_radiation"`
	RecommendOutdoor bool    `json:"recommend_outdoor"`
}

// DefaultAdvisory is returned when no reading is available.
func DefaultAdvisory(district string) Advisory {
	return Advisory{
		District:         district,
		Status:           StatusUnknown,
		RecommendOutdoor: true,
	}
}

// Thresholds are the limits of the advisory rules. A value must exceed the
// threshold to trigger the rule.
type Thresholds struct {
	RainfallMM      float64
	DiscomfortIndex float64
	UVIndex         float64
}

// DefaultThresholds returns 5mm rain, discomfort index 75 and UV index 7.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RainfallMM:      5,
		DiscomfortIndex: 75,
		UVIndex:         7,
	}
}

// Advisor turns readings into advisories.
type Advisor struct {
	thresholds Thresholds
}

// NewAdvisor creates an Advisor with the given thresholds.
func NewAdvisor(t Thresholds) *Advisor {
	return &Advisor{thresholds: t}
}

// Thresholds returns the advisor's thresholds.
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// DiscomfortIndex computes 0.81T + 0.01H(0.99T - 14.3) + 46.3.
func DiscomfortIndex(temperature, humidity float64) float64 {
	return 0.81*temperature + 0.01*humidity*(0.99*temperature-14.3) + 46.3
}

// Advise applies the rules in priority order; the first match wins:
// rain, heat, cloud, UV, then clear. A nil reading yields DefaultAdvisory.
func (a *Advisor) Advise(district string, r *Reading) Advisory {
	if r == nil {
		return DefaultAdvisory(district)
	}

	di := DiscomfortIndex(r.Temperature, r.Humidity)
	adv := Advisory{
		District:         district,
		Status:           StatusClear,
		Rainfall:         round1(r.Precipitation),
		DiscomfortIndex:  round1(di),
		UVIndex:          r.UV,
		RecommendOutdoor: true,
	}

	switch {
	case r.Precipitation > a.thresholds.RainfallMM:
		adv.Status = StatusRain
		adv.RecommendOutdoor = false
	case di > a.thresholds.DiscomfortIndex:
		adv.Status = StatusHot
		adv.RecommendOutdoor = false
	case strings.Contains(r.Sky, "흐림") || strings.Contains(r.Sky, "구름많음"):
		adv.Status = StatusCloudy
	case r.UV > a.thresholds.UVIndex:
		adv.Status = StatusUV
		adv.RecommendOutdoor = false
	}

	return adv
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
