// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package recommend

import (
	"fmt"
	"strings"
)

// Strategy names.
const (
	StrategyEvaluation = "evaluation"
	StrategyWeighted   = "weighted"
)

// Preference table names.
const (
	PreferencesClassic = "classic"
	PreferencesRevised = "revised"
)

// RandomCategory disables the food category filter. RandomCategoryAlias is
// accepted as well, in any case.
const (
	RandomCategory      = "랜덤"
	RandomCategoryAlias = "random"
)

// IsRandomCategory reports whether category leaves the food category
// unfiltered. An empty category counts as random.
func IsRandomCategory(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || c == RandomCategory || strings.EqualFold(c, RandomCategoryAlias)
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limit is the maximum number of places returned per category.
	Limit int `json:"limit"`

	// Strategy names the ranking strategy: "evaluation" or "weighted".
	Strategy string `json:"strategy"`

	// Preferences weights food categories for the weighted strategy.
	Preferences PreferenceTable `json:"preferences"`

	// StationMinMatches is the smallest station-scoped set that is used
	// instead of the whole district.
	StationMinMatches int `json:"station_min_matches"`

	// IndoorMinMatches is the smallest indoor subset a station-scoped
	// activity search commits to.
	IndoorMinMatches int `json:"indoor_min_matches"`

	// CafeDistanceWeight is subtracted from a café's score per meter of
	// distance to the reference point.
	CafeDistanceWeight float64 `json:"cafe_distance_weight"`

	// Minimum evaluation scores per selection path.
	RestaurantDistrict Thresholds `json:"restaurant_district"`
	RestaurantStation  Thresholds `json:"restaurant_station"`
	Cafe               Thresholds `json:"cafe"`
}

// Thresholds is a primary minimum evaluation score and the lower minimum tried
// when nothing clears the primary one.
type Thresholds struct {
	Primary float64 `json:"primary"`
	Relaxed float64 `json:"relaxed"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Limit:              10,
		Strategy:           StrategyEvaluation,
		Preferences:        ClassicPreferences(),
		StationMinMatches:  5,
		IndoorMinMatches:   3,
		CafeDistanceWeight: 0.01,
		RestaurantDistrict: Thresholds{Primary: 19, Relaxed: 15},
		RestaurantStation:  Thresholds{Primary: 15, Relaxed: 10},
		Cafe:               Thresholds{Primary: 14, Relaxed: 10},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.Strategy != StrategyEvaluation && c.Strategy != StrategyWeighted {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if len(c.Preferences.Entries) == 0 {
		return fmt.Errorf("preference table %q has no entries", c.Preferences.Name)
	}
	if c.StationMinMatches < 1 {
		return fmt.Errorf("station_min_matches must be positive, got %d", c.StationMinMatches)
	}
	if c.IndoorMinMatches < 1 {
		return fmt.Errorf("indoor_min_matches must be positive, got %d", c.IndoorMinMatches)
	}
	if c.CafeDistanceWeight < 0 {
		return fmt.Errorf("cafe_distance_weight must be non-negative, got %f", c.CafeDistanceWeight)
	}

	for name, t := range map[string]Thresholds{
		"restaurant_district": c.RestaurantDistrict,
		"restaurant_station":  c.RestaurantStation,
		"cafe":                c.Cafe,
	} {
		if t.Relaxed > t.Primary {
			return fmt.Errorf("%s: relaxed threshold %.1f exceeds primary %.1f", name, t.Relaxed, t.Primary)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Preferences = c.Preferences.clone()
	return &cp
}

// PreferenceEntry weights one food category substring on a 0-80 scale.
type PreferenceEntry struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// PreferenceTable is an ordered list of category weights. The first entry
// whose category is contained in a place's category wins.
type PreferenceTable struct {
	Name    string            `json:"name"`
	Entries []PreferenceEntry `json:"entries"`
}

// DefaultPreferenceScore is used for categories that match no entry.
const DefaultPreferenceScore = 5.0

func basePreferences(rawMeat float64) []PreferenceEntry {
	return []PreferenceEntry{
		{Category: "육류구이류", Weight: 80},
		{Category: "탕류", Weight: 65},
		{Category: "일식류", Weight: 63.5},
		{Category: "국류", Weight: 63},
		{Category: "중국식면류", Weight: 60.9},
		{Category: "돈가스류", Weight: 58.3},
		{Category: "국밥류", Weight: 53.5},
		{Category: "찌개류", Weight: 50.8},
		{Category: "한식", Weight: 50},
		{Category: "육류생회류", Weight: rawMeat},
	}
}

// ClassicPreferences returns the original survey table.
func ClassicPreferences() PreferenceTable {
	return PreferenceTable{Name: PreferencesClassic, Entries: basePreferences(33.8)}
}

// RevisedPreferences returns the table with the revised raw-meat weight.
func RevisedPreferences() PreferenceTable {
	return PreferenceTable{Name: PreferencesRevised, Entries: basePreferences(41.8)}
}

// PreferenceTableByName returns the named built-in table.
func PreferenceTableByName(name string) (PreferenceTable, error) {
	switch name {
	case PreferencesClassic, "":
		return ClassicPreferences(), nil
	case PreferencesRevised:
		return RevisedPreferences(), nil
	default:
		return PreferenceTable{}, fmt.Errorf("unknown preference table %q", name)
	}
}

// Score returns min(10, weight/50) for the first matching entry, or
// DefaultPreferenceScore.
func (t PreferenceTable) Score(category string) float64 {
	if category == "" {
		return DefaultPreferenceScore
	}
	for _, e := range t.Entries {
		if strings.Contains(category, e.Category) {
			return min(10, e.Weight/50)
		}
	}
	return DefaultPreferenceScore
}

func (t PreferenceTable) clone() PreferenceTable {
	entries := make([]PreferenceEntry, len(t.Entries))
	copy(entries, t.Entries)
	return PreferenceTable{Name: t.Name, Entries: entries}
}
