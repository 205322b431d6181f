// Package geo provides the coordinate type and the great-circle helpers used
// to pick between reverse-geocoding candidates.
package geo

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-dashboard/internal/units"
)

// EarthRadiusMeters is the mean radius of the spherical Earth model.
const EarthRadiusMeters = 6371000.0

// Coordinate is a position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// String renders the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Latitude, c.Longitude)
}

// Snap rounds both components to 3 decimal degrees (~100 m) so repeated fixes
// from a jittery sensor map to the same query.
func (c Coordinate) Snap() Coordinate {
	return Coordinate{
		Latitude:  units.RoundHalfUp(c.Latitude*1000) / 1000,
		Longitude: units.RoundHalfUp(c.Longitude*1000) / 1000,
	}
}

// DistanceMeters returns the haversine distance between a and b.
// Only meant for ranking candidates; no accuracy guarantee.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Pow(math.Sin(dLon/2), 2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
