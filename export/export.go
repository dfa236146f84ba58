// Package export renders subsets of a station table, optionally paired
// with an arrival table, as JSON for downstream visualization.
package export

import (
	"encoding/json"
	"strings"
)

// Station is one row of an export adapter's output.
type Station struct {
	Name      string  `json:"name"`
	Time      *uint32 `json:"time,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Result is the top-level JSON document produced by an adapter.
type Result struct {
	Stations []Station `json:"stations"`
}

// MarshalIndent renders r the way the CLI writes it to disk: pretty
// printed, matching the original's serde_json::to_string_pretty output.
func (r Result) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Filter decides whether a candidate station belongs in an export.
type Filter func(s Station) bool

// ByBoundingBox keeps stations whose coordinates fall within the given
// latitude/longitude bounds, inclusive.
func ByBoundingBox(minLat, maxLat, minLon, maxLon float64) Filter {
	return func(s Station) bool {
		return s.Latitude >= minLat && s.Latitude <= maxLat &&
			s.Longitude >= minLon && s.Longitude <= maxLon
	}
}

// ByNameSubstring keeps stations whose name contains substr.
func ByNameSubstring(substr string) Filter {
	return func(s Station) bool {
		return strings.Contains(s.Name, substr)
	}
}

// Apply keeps only the stations matching every filter.
func Apply(stations []Station, filters ...Filter) Result {
	var out []Station
	for _, s := range stations {
		matched := true
		for _, f := range filters {
			if !f(s) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, s)
		}
	}
	return Result{Stations: out}
}
