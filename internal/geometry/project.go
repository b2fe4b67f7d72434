package geometry

import "math"

// euclidean returns the planar distance between two points in native units
func euclidean(a, b Point) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	return math.Sqrt(dx*dx + dy*dy)
}

// Project returns the arc-length position along curve, in the curve's native
// coordinate units, of the nearest point on the piecewise-linear curve to p.
// The second return value is false when the projection cannot be computed
// (degenerate or single-point curve). Pure function: identical inputs always
// produce identical results.
func Project(p Point, curve Polyline) (float64, bool) {
	if !curve.IsCurve() {
		return 0, false
	}

	bestDist := math.MaxFloat64
	bestPos := 0.0
	traversed := 0.0
	found := false

	for i := 1; i < len(curve); i++ {
		a, b := curve[i-1], curve[i]
		segLen := euclidean(a, b)

		// Parameter of the orthogonal foot point, clamped to the segment
		t := 0.0
		if segLen > 0 {
			dx := b.Lon - a.Lon
			dy := b.Lat - a.Lat
			t = ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / (segLen * segLen)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}

		foot := Point{
			Lon: a.Lon + t*(b.Lon-a.Lon),
			Lat: a.Lat + t*(b.Lat-a.Lat),
		}
		dist := euclidean(p, foot)

		if dist < bestDist {
			bestDist = dist
			bestPos = traversed + t*segLen
			found = true
		}

		traversed += segLen
	}

	if !found || math.IsNaN(bestPos) {
		return 0, false
	}
	return bestPos, true
}

// PointAt returns the coordinate at arc-length position d along the curve.
// Positions outside [0, length] clamp to the endpoints.
func PointAt(curve Polyline, d float64) (Point, bool) {
	if !curve.IsCurve() {
		return Point{}, false
	}
	if d <= 0 {
		return curve[0], true
	}

	traversed := 0.0
	for i := 1; i < len(curve); i++ {
		a, b := curve[i-1], curve[i]
		segLen := euclidean(a, b)
		if traversed+segLen >= d && segLen > 0 {
			t := (d - traversed) / segLen
			return Point{
				Lon: a.Lon + t*(b.Lon-a.Lon),
				Lat: a.Lat + t*(b.Lat-a.Lat),
			}, true
		}
		traversed += segLen
	}

	return curve[len(curve)-1], true
}
