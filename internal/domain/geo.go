package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the sphere radius used for every distance computation.
const EarthRadiusMeters = 6_371_000.0

// Coordinate is a WGS-84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// IsFinite reports whether both components are real numbers.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// Valid reports whether the coordinate lies within [-90, 90] x [-180, 180].
func (c Coordinate) Valid() bool {
	return c.IsFinite() && c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Clamp pins latitude to [-90, 90] and wraps longitude into [-180, 180).
// Coordinates that are already valid are returned unchanged.
func (c Coordinate) Clamp() Coordinate {
	if c.Valid() {
		return c
	}
	c.Lat = math.Max(-90, math.Min(90, c.Lat))
	if c.Lon < -180 || c.Lon > 180 {
		c.Lon = math.Mod(c.Lon+180, 360)
		if c.Lon < 0 {
			c.Lon += 360
		}
		c.Lon -= 180
	}
	return c
}

// LatLng converts the coordinate to its s2 representation.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. It is symmetric and zero for identical points.
func DistanceMeters(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
