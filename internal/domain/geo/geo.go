// Package geo provides great-circle math and coordinate validation.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in degrees. It serializes as a
// two-element JSON array, [lat, lon], matching the persisted event layout.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite and in range
// (lat in [-90, 90], lon in [-180, 180]).
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DistanceTo returns the great-circle distance to other in kilometers.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return DistanceKm(c.Lat, c.Lon, other.Lat, other.Lon)
}

// MarshalJSON encodes the pair as [lat, lon].
func (c Coordinates) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal([2]float64{c.Lat, c.Lon})
	if err != nil {
		return nil, fmt.Errorf("marshal coordinates: %w", err)
	}
	return b, nil
}

// UnmarshalJSON decodes a [lat, lon] array. Range validation is left to
// Valid so that out-of-range pairs can be tolerated by callers.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("unmarshal coordinates: %w", err)
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

// DistanceKm computes the haversine great-circle distance between two
// points given in degrees. Symmetric, zero for identical points. Callers
// are responsible for passing finite, in-range coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
