package spatial

import (
	"github.com/golang/geo/s2"
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return angle(lat1, lon1, lat2, lon2) * EarthRadiusMeters
}

// HaversineKm is HaversineDistance in kilometers. Coincident points give exactly 0.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return angle(lat1, lon1, lat2, lon2) * EarthRadiusKm
}

// angle returns the central angle in radians. s2 evaluates it with the haversine
// formula, so argument order does not change the result.
func angle(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians()
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)
