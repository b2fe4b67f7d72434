package geometry

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	// degreesToKm is the rough degrees-to-kilometers conversion used as the
	// approximate fallback when the geodesic calculation is unusable
	degreesToKm = 111.32
)

// HaversineMeters calculates the great-circle distance between two points in
// meters using the S2 geometry library
func HaversineMeters(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// LengthKm returns the geodesic length of line in kilometers, rounded to
// 3 decimal places. The primary path sums great-circle segment distances;
// if that produces a non-finite value the native degree length times 111.32
// is used instead, and 0.0 is the last resort. Never returns a negative or
// non-finite value.
func LengthKm(line Polyline) float64 {
	if len(line) < 2 {
		return 0.0
	}

	var meters float64
	for i := 1; i < len(line); i++ {
		meters += HaversineMeters(line[i-1], line[i])
	}

	km := meters / 1000.0
	if !isUsable(km) {
		km = line.Length() * degreesToKm
		if !isUsable(km) {
			return 0.0
		}
	}

	return Round3(km)
}

// Round3 rounds a value to 3 decimal places
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
