package geometry

// Point represents a 2D geographic coordinate (WGS84 degrees)
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Polyline is an ordered sequence of points tracing a route trajectory
type Polyline []Point

// IsCurve reports whether the polyline has enough points to be treated as a curve
func (p Polyline) IsCurve() bool {
	return len(p) >= 2
}

// Length returns the total polyline length in native coordinate units (degrees)
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += euclidean(p[i-1], p[i])
	}
	return total
}

// Clone returns an independent copy of the polyline
func (p Polyline) Clone() Polyline {
	if p == nil {
		return nil
	}
	out := make(Polyline, len(p))
	copy(out, p)
	return out
}
