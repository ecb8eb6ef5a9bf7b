// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package models

import (
	"database/sql"
	"errors"
	"math"
	"testing"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

func TestEvaluationScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rating  *float64
		reviews *int64
		want    float64
	}{
		{"typical", ptrF(4.5), ptrI(100), 4.5 * math.Log(101)},
		{"zero reviews", ptrF(4.5), ptrI(0), 0},
		{"missing rating", nil, ptrI(100), 0},
		{"missing reviews", ptrF(4.0), nil, 0},
		{"negative reviews", ptrF(4.0), ptrI(-3), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluationScore(tt.rating, tt.reviews)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EvaluationScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceRangeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price *int64
		want  string
	}{
		{nil, "정보 없음"},
		{ptrI(0), "정보 없음"},
		{ptrI(8000), "1만원 이하"},
		{ptrI(10000), "1-2만원"},
		{ptrI(25000), "2-3만원"},
		{ptrI(45000), "3-5만원"},
		{ptrI(80000), "3-5만원"},
	}

	for _, tt := range tests {
		if got := PriceRangeLabel(tt.price); got != tt.want {
			t.Errorf("PriceRangeLabel(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestBucketLabel(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]string{0: "정보 없음", 1: "1만원 이하", 4: "3-5만원", 5: "정보 없음", -1: "정보 없음"} {
		if got := BucketLabel(code); got != want {
			t.Errorf("BucketLabel(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestActivityTypeFromCode(t *testing.T) {
	t.Parallel()

	if got := ActivityTypeFromCode(ptrI(0)); got != ActivityIndoor {
		t.Errorf("code 0 = %q, want %q", got, ActivityIndoor)
	}
	if got := ActivityTypeFromCode(ptrI(1)); got != ActivityOutdoor {
		t.Errorf("code 1 = %q, want %q", got, ActivityOutdoor)
	}
	if got := ActivityTypeFromCode(ptrI(7)); got != ActivityUnknown {
		t.Errorf("code 7 = %q, want %q", got, ActivityUnknown)
	}
	if got := ActivityTypeFromCode(nil); got != ActivityUnknown {
		t.Errorf("nil code = %q, want %q", got, ActivityUnknown)
	}
}

func TestFromRow_Restaurant(t *testing.T) {
	t.Parallel()

	row := Row{
		ColName:      " 을지로 고깃집 ",
		ColAddress:   "서울특별시 중구 을지로 12",
		ColCategory:  "육류구이류",
		ColPrice:     "15,000",
		ColScore:     "4.3",
		ColReview:    int32(120),
		ColLatitude:  37.566,
		ColLongitude: sql.NullFloat64{Float64: 126.991, Valid: true},
		ColStation:   "을지로3가역",
	}

	p, err := FromRow(KindRestaurant, row)
	if err != nil {
		t.Fatalf("FromRow() error = %v", err)
	}
	if p.Name != "을지로 고깃집" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Price == nil || *p.Price != 15000 {
		t.Errorf("Price = %v, want 15000", p.Price)
	}
	if p.PriceBucket != 2 {
		t.Errorf("PriceBucket = %d, want 2", p.PriceBucket)
	}
	if p.PriceRange != "1-2만원" {
		t.Errorf("PriceRange = %q", p.PriceRange)
	}
	if p.Rating == nil || *p.Rating != 4.3 {
		t.Errorf("Rating = %v, want 4.3", p.Rating)
	}
	if p.Reviews == nil || *p.Reviews != 120 {
		t.Errorf("Reviews = %v, want 120", p.Reviews)
	}
	if p.Point() == nil {
		t.Error("Point() = nil, want coordinate")
	}
	want := 4.3 * math.Log(121)
	if math.Abs(p.EvaluationScore-want) > 1e-9 {
		t.Errorf("EvaluationScore = %v, want %v", p.EvaluationScore, want)
	}
}

func TestFromRow_MissingValues(t *testing.T) {
	t.Parallel()

	row := Row{
		ColName:      "이름만 있는 곳",
		ColScore:     "",
		ColReview:    nil,
		ColLatitude:  math.NaN(),
		ColLongitude: "not a number",
		ColType:      sql.NullInt64{},
	}

	p, err := FromRow(KindActivity, row)
	if err != nil {
		t.Fatalf("FromRow() error = %v", err)
	}
	if p.Rating != nil || p.Reviews != nil {
		t.Errorf("Rating/Reviews = %v/%v, want nil", p.Rating, p.Reviews)
	}
	if p.Latitude != nil || p.Longitude != nil {
		t.Errorf("coordinates = %v/%v, want nil", p.Latitude, p.Longitude)
	}
	if p.Point() != nil {
		t.Error("Point() should be nil without coordinates")
	}
	if p.ActivityType != ActivityUnknown {
		t.Errorf("ActivityType = %q, want %q", p.ActivityType, ActivityUnknown)
	}
	if p.EvaluationScore != 0 {
		t.Errorf("EvaluationScore = %v, want 0", p.EvaluationScore)
	}
}

func TestFromRow_MissingName(t *testing.T) {
	t.Parallel()

	_, err := FromRow(KindCafe, Row{ColName: "   ", ColScore: 4.1})
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("FromRow() error = %v, want ErrMissingName", err)
	}
}

func TestRowInt_Truncates(t *testing.T) {
	t.Parallel()

	r := Row{"a": "12.0", "b": 7.9, "c": []byte("42")}
	if got := r.Int("a"); got == nil || *got != 12 {
		t.Errorf("Int(a) = %v, want 12", got)
	}
	if got := r.Int("b"); got == nil || *got != 7 {
		t.Errorf("Int(b) = %v, want 7", got)
	}
	if got := r.Int("c"); got == nil || *got != 42 {
		t.Errorf("Int(c) = %v, want 42", got)
	}
	if got := r.Int("missing"); got != nil {
		t.Errorf("Int(missing) = %v, want nil", got)
	}
}

func TestKindCollection(t *testing.T) {
	t.Parallel()

	if KindActivity.Collection() != "enjoy" {
		t.Errorf("activity collection = %q", KindActivity.Collection())
	}
	if Kind("bogus").Collection() != "" {
		t.Error("unknown kind should have no collection")
	}
}
