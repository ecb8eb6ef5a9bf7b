// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package weather

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/ojakgyo/internal/models"
)

func TestDiscomfortIndex(t *testing.T) {
	t.Parallel()

	// 0.81*30 + 0.01*80*(29.7-14.3) + 46.3 = 24.3 + 12.32 + 46.3
	got := DiscomfortIndex(30, 80)
	if math.Abs(got-82.92) > 1e-9 {
		t.Errorf("DiscomfortIndex(30, 80) = %v, want 82.92", got)
	}
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	advisor := NewAdvisor(DefaultThresholds())

	tests := []struct {
		name        string
		reading     *Reading
		wantStatus  string
		wantOutdoor bool
	}{
		{
			name:        "no reading",
			reading:     nil,
			wantStatus:  StatusUnknown,
			wantOutdoor: true,
		},
		{
			name:        "rain beats heat",
			reading:     &Reading{Temperature: 33, Humidity: 90, Precipitation: 12},
			wantStatus:  StatusRain,
			wantOutdoor: false,
		},
		{
			name:        "rain at threshold is not rain",
			reading:     &Reading{Temperature: 15, Humidity: 40, Precipitation: 5},
			wantStatus:  StatusClear,
			wantOutdoor: true,
		},
		{
			name:        "hot and humid",
			reading:     &Reading{Temperature: 31, Humidity: 85},
			wantStatus:  StatusHot,
			wantOutdoor: false,
		},
		{
			name:        "cloudy beats uv",
			reading:     &Reading{Temperature: 18, Humidity: 40, Sky: "구름많음", UV: 9},
			wantStatus:  StatusCloudy,
			wantOutdoor: true,
		},
		{
			name:        "overcast substring",
			reading:     &Reading{Temperature: 18, Humidity: 40, Sky: "흐림"},
			wantStatus:  StatusCloudy,
			wantOutdoor: true,
		},
		{
			name:        "strong uv",
			reading:     &Reading{Temperature: 20, Humidity: 30, Sky: "맑음", UV: 8},
			wantStatus:  StatusUV,
			wantOutdoor: false,
		},
		{
			name:        "clear",
			reading:     &Reading{Temperature: 20, Humidity: 30, Sky: "맑음", UV: 3},
			wantStatus:  StatusClear,
			wantOutdoor: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := advisor.Advise("마포구", tt.reading)
			if adv.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", adv.Status, tt.wantStatus)
			}
			if adv.RecommendOutdoor != tt.wantOutdoor {
				t.Errorf("RecommendOutdoor = %v, want %v", adv.RecommendOutdoor, tt.wantOutdoor)
			}
			if adv.District != "마포구" {
				t.Errorf("District = %q", adv.District)
			}
		})
	}
}

func TestAdvise_Rounding(t *testing.T) {
	t.Parallel()

	adv := NewAdvisor(DefaultThresholds()).Advise("중구", &Reading{Temperature: 30, Humidity: 80, Precipitation: 1.26})
	if adv.Rainfall != 1.3 {
		t.Errorf("Rainfall = %v, want 1.3", adv.Rainfall)
	}
	if adv.DiscomfortIndex != 82.9 {
		t.Errorf("DiscomfortIndex = %v, want 82.9", adv.DiscomfortIndex)
	}
}

func TestAdvise_CustomThresholds(t *testing.T) {
	t.Parallel()

	advisor := NewAdvisor(Thresholds{RainfallMM: 0.5, DiscomfortIndex: 90, UVIndex: 10})
	adv := advisor.Advise("종로구", &Reading{Temperature: 20, Humidity: 50, Precipitation: 1})
	if adv.Status != StatusRain {
		t.Errorf("Status = %q, want %q", adv.Status, StatusRain)
	}
}

func TestReadingFromRow_Defaults(t *testing.T) {
	t.Parallel()

	r := ReadingFromRow(models.Row{
		ColDistrict: "강남구",
		ColTime:     "2024-07-01 14:00:00",
		ColSky:      "맑음",
	})
	if r.Temperature != DefaultTemperature || r.Humidity != DefaultHumidity {
		t.Errorf("temp/humidity = %v/%v, want defaults", r.Temperature, r.Humidity)
	}
	if r.Precipitation != 0 || r.UV != 0 {
		t.Errorf("precipitation/uv = %v/%v, want 0", r.Precipitation, r.UV)
	}
	want := time.Date(2024, 7, 1, 14, 0, 0, 0, time.UTC)
	if !r.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", r.Time, want)
	}
}
