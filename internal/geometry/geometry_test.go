package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func horizontalCurve() Polyline {
	return Polyline{
		{Lon: 116.0, Lat: 39.9},
		{Lon: 116.1, Lat: 39.9},
		{Lon: 116.2, Lat: 39.9},
	}
}

func TestProjectPointOnCurve(t *testing.T) {
	curve := horizontalCurve()

	pos, ok := Project(Point{Lon: 116.05, Lat: 39.9}, curve)
	require.True(t, ok)
	assert.InDelta(t, 0.05, pos, 1e-12)

	pos, ok = Project(Point{Lon: 116.15, Lat: 39.9}, curve)
	require.True(t, ok)
	assert.InDelta(t, 0.15, pos, 1e-12)
}

func TestProjectOffCurvePoint(t *testing.T) {
	curve := horizontalCurve()

	// Off-curve points land on the nearest foot point
	pos, ok := Project(Point{Lon: 116.05, Lat: 39.95}, curve)
	require.True(t, ok)
	assert.InDelta(t, 0.05, pos, 1e-12)
}

func TestProjectBeyondEndpointsClamps(t *testing.T) {
	curve := horizontalCurve()

	pos, ok := Project(Point{Lon: 115.5, Lat: 39.9}, curve)
	require.True(t, ok)
	assert.Equal(t, 0.0, pos)

	pos, ok = Project(Point{Lon: 116.9, Lat: 39.9}, curve)
	require.True(t, ok)
	assert.InDelta(t, 0.2, pos, 1e-12)
}

func TestProjectDegenerateCurve(t *testing.T) {
	_, ok := Project(Point{Lon: 116.0, Lat: 39.9}, Polyline{{Lon: 116.0, Lat: 39.9}})
	assert.False(t, ok)

	_, ok = Project(Point{Lon: 116.0, Lat: 39.9}, nil)
	assert.False(t, ok)
}

func TestProjectIsDeterministic(t *testing.T) {
	curve := horizontalCurve()
	p := Point{Lon: 116.123, Lat: 39.95}

	first, ok := Project(p, curve)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := Project(p, curve)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestPointAt(t *testing.T) {
	curve := horizontalCurve()

	pt, ok := PointAt(curve, 0.05)
	require.True(t, ok)
	assert.InDelta(t, 116.05, pt.Lon, 1e-12)
	assert.InDelta(t, 39.9, pt.Lat, 1e-12)

	// Positions outside the curve clamp to the endpoints
	pt, ok = PointAt(curve, -1)
	require.True(t, ok)
	assert.Equal(t, curve[0], pt)

	pt, ok = PointAt(curve, 5)
	require.True(t, ok)
	assert.Equal(t, curve[2], pt)
}

func TestSliceExtractsSubCurve(t *testing.T) {
	curve := horizontalCurve()

	out, ok := Slice(curve, 0.05, 0.15)
	require.True(t, ok)
	require.Len(t, out, 3)
	assert.InDelta(t, 116.05, out[0].Lon, 1e-12)
	assert.InDelta(t, 116.1, out[1].Lon, 1e-12)
	assert.InDelta(t, 116.15, out[2].Lon, 1e-12)
}

func TestSliceArgumentOrderInvariance(t *testing.T) {
	curve := horizontalCurve()

	forward, ok := Slice(curve, 0.05, 0.15)
	require.True(t, ok)
	reversed, ok := Slice(curve, 0.15, 0.05)
	require.True(t, ok)
	assert.Equal(t, forward, reversed)
}

func TestSliceDegenerate(t *testing.T) {
	curve := horizontalCurve()

	_, ok := Slice(curve, 0.05, 0.05)
	assert.False(t, ok)

	_, ok = Slice(curve, 0.05, 0.05+1e-9)
	assert.False(t, ok)
}

func TestSliceClampsOutOfRangePositions(t *testing.T) {
	curve := horizontalCurve()

	out, ok := Slice(curve, -1, 5)
	require.True(t, ok)
	assert.Equal(t, curve[0], out[0])
	assert.Equal(t, curve[2], out[len(out)-1])
}

func TestSlicePanicsOnNonCurve(t *testing.T) {
	assert.Panics(t, func() {
		Slice(Polyline{{Lon: 116.0, Lat: 39.9}}, 0, 1)
	})
}

func TestLengthKm(t *testing.T) {
	// One degree of latitude is about 111.19 km on a sphere of radius 6371 km
	line := Polyline{
		{Lon: 116.0, Lat: 39.0},
		{Lon: 116.0, Lat: 40.0},
	}
	km := LengthKm(line)
	assert.InDelta(t, 111.19, km, 0.1)

	assert.Equal(t, 0.0, LengthKm(nil))
	assert.Equal(t, 0.0, LengthKm(Polyline{{Lon: 116.0, Lat: 39.0}}))
}

func TestLengthKmNeverNegative(t *testing.T) {
	line := Polyline{
		{Lon: 116.0, Lat: 39.9},
		{Lon: 116.0, Lat: 39.9},
	}
	assert.GreaterOrEqual(t, LengthKm(line), 0.0)
}

func TestLengthKmNonFiniteCoordinates(t *testing.T) {
	lines := map[string]Polyline{
		"nan latitude": {
			{Lon: 116.0, Lat: math.NaN()},
			{Lon: 116.1, Lat: 39.9},
		},
		"nan longitude": {
			{Lon: math.NaN(), Lat: 39.9},
			{Lon: 116.1, Lat: 39.9},
		},
		"infinite latitude": {
			{Lon: 116.0, Lat: math.Inf(1)},
			{Lon: 116.1, Lat: 39.9},
		},
		"infinite longitude": {
			{Lon: math.Inf(-1), Lat: 39.9},
			{Lon: 116.1, Lat: 39.9},
		},
	}
	for name, line := range lines {
		km := LengthKm(line)
		assert.False(t, math.IsNaN(km), name)
		assert.False(t, math.IsInf(km, 0), name)
		assert.GreaterOrEqual(t, km, 0.0, name)
	}
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 1.3, Round3(1.2999999))
	assert.Equal(t, 2.2, Round3(2.2000001))
	assert.Equal(t, 0.001, Round3(0.0005))
}

func TestPolylineLength(t *testing.T) {
	assert.InDelta(t, 0.2, horizontalCurve().Length(), 1e-12)
	assert.Equal(t, 0.0, Polyline{}.Length())
}

func TestPolylineClone(t *testing.T) {
	curve := horizontalCurve()
	clone := curve.Clone()
	clone[0].Lon = 0

	assert.Equal(t, 116.0, curve[0].Lon)
	assert.Nil(t, Polyline(nil).Clone())
}
