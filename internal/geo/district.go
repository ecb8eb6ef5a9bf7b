// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

// Package geo provides Seoul district extraction from free-text addresses and
// walking-distance estimates between coordinates.
package geo

import "strings"

// districts are the 25 Seoul districts (gu) in match order. ExtractDistrict
// returns the first entry contained in an address, so the order is part of the
// contract (중구 is tested before 중랑구).
var districts = [...]string{
	"강남구", "강동구", "강북구", "강서구", "관악구", "광진구", "구로구", "금천구",
	"노원구", "도봉구", "동대문구", "동작구", "마포구", "서대문구", "서초구", "성동구",
	"성북구", "송파구", "양천구", "영등포구", "용산구", "은평구", "종로구", "중구", "중랑구",
}

// Districts returns the district names in match order.
func Districts() []string {
	out := make([]string, len(districts))
	copy(out[:], districts[:])
	return out
}

// IsDistrict reports whether name is exactly one of the 25 district names.
func IsDistrict(name string) bool {
	for _, d := range districts {
		if d == name {
			return true
		}
	}
	return false
}

// ExtractDistrict returns the first district name contained in address, or ""
// when the address is empty or names no district.
func ExtractDistrict(address string) string {
	if address == "" {
		return ""
	}
	for _, d := range districts {
		if strings.Contains(address, d) {
			return d
		}
	}
	return ""
}
