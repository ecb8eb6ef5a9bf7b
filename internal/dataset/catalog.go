// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package dataset

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/weather"
)

// Catalog holds the place collections, the latest weather reading of each
// district and the station ratings. A Catalog is never modified after it is
// built and is safe for concurrent use.
type Catalog struct {
	restaurants []models.Place
	activities  []models.Place
	cafes       []models.Place

	readings map[string]*weather.Reading

	stationStars     map[string]float64
	districtStations map[string][]string

	loadedAt time.Time
}

// Counts is the number of places per kind.
type Counts struct {
	Restaurants int `json:"restaurants"`
	Attractions int `json:"attractions"`
	Cafes       int `json:"cafes"`
}

// NewCatalog builds a catalog from places and weather readings. The District
// and NormalizedReviews fields are derived here; every other field is taken
// as given. Only the most recent reading of each district is kept.
func NewCatalog(restaurants, activities, cafes []models.Place, readings []*weather.Reading) *Catalog {
	c := &Catalog{
		restaurants:      derive(restaurants),
		activities:       derive(activities),
		cafes:            derive(cafes),
		readings:         make(map[string]*weather.Reading),
		stationStars:     make(map[string]float64),
		districtStations: make(map[string][]string),
		loadedAt:         time.Now(),
	}

	for _, r := range readings {
		if r == nil || r.District == "" {
			continue
		}
		if cur, ok := c.readings[r.District]; !ok || r.Time.After(cur.Time) {
			cp := *r
			c.readings[r.District] = &cp
		}
	}

	return c
}

// derive copies places and fills District and NormalizedReviews.
func derive(in []models.Place) []models.Place {
	out := make([]models.Place, len(in))
	copy(out, in)

	var minR, maxR int64
	seen := false
	for i := range out {
		out[i].District = geo.ExtractDistrict(out[i].Address)
		if r := out[i].Reviews; r != nil {
			if !seen || *r < minR {
				minR = *r
			}
			if !seen || *r > maxR {
				maxR = *r
			}
			seen = true
		}
	}

	for i := range out {
		out[i].NormalizedReviews = 0
		if r := out[i].Reviews; r != nil && maxR > minR {
			out[i].NormalizedReviews = float64(*r-minR) / float64(maxR-minR)
		}
	}
	return out
}

// Places returns the collection of kind. The slice is shared and must not be
// modified.
func (c *Catalog) Places(kind models.Kind) []models.Place {
	switch kind {
	case models.KindRestaurant:
		return c.restaurants
	case models.KindActivity:
		return c.activities
	case models.KindCafe:
		return c.cafes
	default:
		return nil
	}
}

// InDistrict returns the places of kind whose derived district is district.
func (c *Catalog) InDistrict(kind models.Kind, district string) []models.Place {
	var out []models.Place
	for _, p := range c.Places(kind) {
		if p.District == district {
			out = append(out, p)
		}
	}
	return out
}

// Counts returns the size of each collection.
func (c *Catalog) Counts() Counts {
	return Counts{
		Restaurants: len(c.restaurants),
		Attractions: len(c.activities),
		Cafes:       len(c.cafes),
	}
}

// CountsByAddress counts the places whose address contains district.
func (c *Catalog) CountsByAddress(district string) Counts {
	count := func(places []models.Place) int {
		n := 0
		for i := range places {
			if strings.Contains(places[i].Address, district) {
				n++
			}
		}
		return n
	}
	if district == "" {
		return Counts{}
	}
	return Counts{
		Restaurants: count(c.restaurants),
		Attractions: count(c.activities),
		Cafes:       count(c.cafes),
	}
}

// LoadedAt returns when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// LatestWeather returns the most recent reading of district, or nil when the
// district has none. It implements weather.Source.
func (c *Catalog) LatestWeather(ctx context.Context, district string) (*weather.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := c.readings[district]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

// Stations returns up to limit stations observed in district ordered by star
// rating, best first. It implements StationSource.
func (c *Catalog) Stations(ctx context.Context, district string, limit int) ([]Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Station
	for _, name := range c.districtStations[district] {
		if star, ok := c.stationStars[name]; ok {
			out = append(out, Station{Name: name, Star: star})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Star > out[j].Star
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// withStations attaches station ratings and the stations seen per district.
func (c *Catalog) withStations(stars map[string]float64, byDistrict map[string][]string) *Catalog {
	if stars != nil {
		c.stationStars = stars
	}
	if byDistrict != nil {
		c.districtStations = byDistrict
	}
	return c
}
