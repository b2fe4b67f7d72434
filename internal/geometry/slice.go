package geometry

// degenerateLength is the native-unit threshold below which an extracted
// slice is treated as "no meaningful segment"
const degenerateLength = 0.000001

// Slice extracts the sub-polyline between arc-length positions start and end
// along curve. Argument order does not matter: start and end are swapped when
// given in descending order. The second return value is false when the
// extracted slice is empty or shorter than the degeneracy threshold, in which
// case the caller is expected to fall back to a straight connector.
//
// Calling Slice with fewer than 2 curve points is a caller bug and panics.
func Slice(curve Polyline, start, end float64) (Polyline, bool) {
	if !curve.IsCurve() {
		panic("geometry: Slice requires a curve of at least 2 points")
	}

	if start > end {
		start, end = end, start
	}

	total := curve.Length()
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if end-start < degenerateLength {
		return nil, false
	}

	var out Polyline

	startPt, ok := PointAt(curve, start)
	if !ok {
		return nil, false
	}
	out = append(out, startPt)

	// Interior vertices strictly between the two positions
	traversed := 0.0
	for i := 1; i < len(curve); i++ {
		traversed += euclidean(curve[i-1], curve[i])
		if traversed > start && traversed < end {
			out = append(out, curve[i])
		}
		if traversed >= end {
			break
		}
	}

	endPt, ok := PointAt(curve, end)
	if !ok {
		return nil, false
	}
	out = append(out, endPt)

	if len(out) < 2 || out.Length() < degenerateLength {
		return nil, false
	}
	return out, true
}
