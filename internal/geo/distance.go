// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package geo

import "math"

const (
	// EarthRadiusMeters is the mean earth radius used by HaversineDistance.
	EarthRadiusMeters = 6371000.0

	// PedestrianFactor scales great-circle distance to an estimated walking distance.
	PedestrianFactor = 1.4
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewPoint returns a point for lat/lon, or nil when either is missing.
func NewPoint(lat, lon *float64) *Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &Point{Lat: *lat, Lon: *lon}
}

// Valid reports whether p is non-nil, finite and within coordinate ranges.
func (p *Point) Valid() bool {
	if p == nil {
		return false
	}
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// HaversineDistance returns the estimated walking distance in meters between a
// and b: the great-circle distance multiplied by PedestrianFactor. A missing or
// invalid point yields +Inf, so it never ranks as nearest.
func HaversineDistance(a, b *Point) float64 {
	if !a.Valid() || !b.Valid() {
		return math.Inf(1)
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	sinDLat := math.Sin((b.Lat - a.Lat) * math.Pi / 360)
	sinDLon := math.Sin((b.Lon - a.Lon) * math.Pi / 360)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*(sinDLon*sinDLon)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c * PedestrianFactor
}
