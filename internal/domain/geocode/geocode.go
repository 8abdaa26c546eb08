// Package geocode provides a mocked geocoding service backed by a fixed
// city table. It stands in for a real geocoding API; lookups are local
// and deterministic.
package geocode

import (
	"context"
	"errors"
	"strings"

	"partyconnect/internal/domain/geo"
	"partyconnect/pkg/metrics"
)

// ErrUnknownLocation is returned when a name matches no table entry.
var ErrUnknownLocation = errors.New("unknown location")

// reverseMatchRadiusKm bounds how far a reverse lookup may snap to the
// nearest table entry before giving up.
const reverseMatchRadiusKm = 100.0

// unknownLocationName is the reverse-lookup fallback label.
const unknownLocationName = "Unknown location"

// Resolver translates between free-text place names and coordinates.
type Resolver interface {
	// Geocode resolves a place name to coordinates.
	Geocode(ctx context.Context, name string) (geo.Coordinates, error)
	// ReverseGeocode resolves coordinates to a display name, falling
	// back to "Unknown location" when nothing is close enough.
	ReverseGeocode(ctx context.Context, c geo.Coordinates) string
}

type entry struct {
	key    string // lower-cased lookup key
	label  string // display name for reverse lookups
	coords geo.Coordinates
}

// TableResolver implements Resolver over an in-memory city table.
type TableResolver struct {
	entries []entry
}

// Option applies a configuration option to the TableResolver.
type Option func(*TableResolver)

// WithEntry adds or overrides a city in the table.
func WithEntry(name, label string, c geo.Coordinates) Option {
	return func(r *TableResolver) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		for i := range r.entries {
			if r.entries[i].key == key {
				r.entries[i] = entry{key: key, label: label, coords: c}
				return
			}
		}
		r.entries = append(r.entries, entry{key: key, label: label, coords: c})
	}
}

// NewTableResolver creates a resolver preloaded with the default city
// table, then applies options.
func NewTableResolver(opts ...Option) *TableResolver {
	r := &TableResolver{entries: defaultTable()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Geocode resolves a place name. Exact key matches win; otherwise the
// first entry whose key contains the query (or vice versa) is used.
func (r *TableResolver) Geocode(_ context.Context, name string) (geo.Coordinates, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		metrics.RecordGeocodeLookup("forward", "miss")
		return geo.Coordinates{}, ErrUnknownLocation
	}

	for _, e := range r.entries {
		if e.key == q {
			metrics.RecordGeocodeLookup("forward", "hit")
			return e.coords, nil
		}
	}
	for _, e := range r.entries {
		if strings.Contains(q, e.key) || strings.Contains(e.key, q) {
			metrics.RecordGeocodeLookup("forward", "hit")
			return e.coords, nil
		}
	}

	metrics.RecordGeocodeLookup("forward", "miss")
	return geo.Coordinates{}, ErrUnknownLocation
}

// ReverseGeocode returns the label of the nearest table entry within the
// match radius, or "Unknown location".
func (r *TableResolver) ReverseGeocode(_ context.Context, c geo.Coordinates) string {
	best := ""
	bestDist := reverseMatchRadiusKm
	for _, e := range r.entries {
		if d := e.coords.DistanceTo(c); d <= bestDist {
			best = e.label
			bestDist = d
		}
	}
	if best == "" {
		metrics.RecordGeocodeLookup("reverse", "miss")
		return unknownLocationName
	}
	metrics.RecordGeocodeLookup("reverse", "hit")
	return best
}

// defaultTable mirrors the demo city set the application ships with.
func defaultTable() []entry {
	return []entry{
		{"los angeles", "Los Angeles, CA", geo.Coordinates{Lat: 34.0522, Lon: -118.2437}},
		{"new york", "New York, NY", geo.Coordinates{Lat: 40.7128, Lon: -74.006}},
		{"chicago", "Chicago, IL", geo.Coordinates{Lat: 41.8781, Lon: -87.6298}},
		{"san francisco", "San Francisco, CA", geo.Coordinates{Lat: 37.7749, Lon: -122.4194}},
		{"austin", "Austin, TX", geo.Coordinates{Lat: 30.2672, Lon: -97.7431}},
		{"malibu", "Malibu Beach, CA", geo.Coordinates{Lat: 34.0259, Lon: -118.7798}},
		{"miami", "Miami, FL", geo.Coordinates{Lat: 25.7617, Lon: -80.1918}},
		{"seattle", "Seattle, WA", geo.Coordinates{Lat: 47.6062, Lon: -122.3321}},
		{"boston", "Boston, MA", geo.Coordinates{Lat: 42.3601, Lon: -71.0589}},
		{"denver", "Denver, CO", geo.Coordinates{Lat: 39.7392, Lon: -104.9903}},
		{"las vegas", "Las Vegas, NV", geo.Coordinates{Lat: 36.1699, Lon: -115.1398}},
		{"london", "London, UK", geo.Coordinates{Lat: 51.5074, Lon: -0.1278}},
		{"paris", "Paris, France", geo.Coordinates{Lat: 48.8566, Lon: 2.3522}},
		{"tokyo", "Tokyo, Japan", geo.Coordinates{Lat: 35.6762, Lon: 139.6503}},
		{"sydney", "Sydney, Australia", geo.Coordinates{Lat: -33.8688, Lon: 151.2093}},
		{"berlin", "Berlin, Germany", geo.Coordinates{Lat: 52.52, Lon: 13.405}},
		{"madrid", "Madrid, Spain", geo.Coordinates{Lat: 40.4168, Lon: -3.7038}},
		{"barcelona", "Barcelona, Spain", geo.Coordinates{Lat: 41.3851, Lon: 2.1734}},
		{"amsterdam", "Amsterdam, Netherlands", geo.Coordinates{Lat: 52.3676, Lon: 4.9041}},
		{"toronto", "Toronto, Canada", geo.Coordinates{Lat: 43.6532, Lon: -79.3832}},
		{"singapore", "Singapore", geo.Coordinates{Lat: 1.3521, Lon: 103.8198}},
		{"dubai", "Dubai, UAE", geo.Coordinates{Lat: 25.2048, Lon: 55.2708}},
	}
}
