package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
)

func testRoute() models.Route {
	return models.Route{
		RouteID: "R1",
		NameCN:  "1路",
		CityCN:  "北京市",
		CityEN:  "beijing",
		Trajectory: geometry.Polyline{
			{Lon: 116.00, Lat: 39.90},
			{Lon: 116.05, Lat: 39.90},
			{Lon: 116.10, Lat: 39.90},
			{Lon: 116.15, Lat: 39.90},
		},
	}
}

func stopAt(id string, lon float64) models.Stop {
	return models.Stop{
		StopID:   id,
		RouteID:  "R1",
		NameCN:   "站" + id,
		CityCN:   "北京市",
		CityEN:   "beijing",
		Location: geometry.Point{Lon: lon, Lat: 39.90},
	}
}

func TestSegmentRouteProducesConsecutivePairs(t *testing.T) {
	route := testRoute()
	stops := []models.Stop{
		stopAt("A", 116.00),
		stopAt("B", 116.06),
		stopAt("C", 116.12),
	}

	segments := SegmentRoute(route, stops)
	require.Len(t, segments, 2)

	assert.Equal(t, "A", segments[0].StartStopID)
	assert.Equal(t, "B", segments[0].EndStopID)
	assert.Equal(t, "B", segments[1].StartStopID)
	assert.Equal(t, "C", segments[1].EndStopID)

	for _, seg := range segments {
		assert.Greater(t, seg.DistanceKm, 0.0)
		assert.True(t, seg.Geometry.IsCurve())
		assert.Equal(t, "beijing", seg.CityEN)
	}
}

func TestSegmentRouteOrdersByProjection(t *testing.T) {
	route := testRoute()

	// Input order is scrambled; the curve position decides
	stops := []models.Stop{
		stopAt("C", 116.12),
		stopAt("A", 116.00),
		stopAt("B", 116.06),
	}

	segments := SegmentRoute(route, stops)
	require.Len(t, segments, 2)
	assert.Equal(t, "A", segments[0].StartStopID)
	assert.Equal(t, "C", segments[1].EndStopID)
}

func TestSegmentRouteInsufficientStops(t *testing.T) {
	route := testRoute()

	assert.Nil(t, SegmentRoute(route, nil))
	assert.Nil(t, SegmentRoute(route, []models.Stop{stopAt("A", 116.00)}))
}

func TestSegmentRouteInvalidTrajectory(t *testing.T) {
	route := testRoute()
	route.Trajectory = geometry.Polyline{{Lon: 116.0, Lat: 39.9}}

	stops := []models.Stop{stopAt("A", 116.00), stopAt("B", 116.06)}
	assert.Nil(t, SegmentRoute(route, stops))
}

func TestSegmentRouteStraightFallback(t *testing.T) {
	route := testRoute()

	// Both stops project to the same curve position, so the slice is
	// degenerate and the segment falls back to a direct connector
	a := stopAt("A", 116.05)
	b := stopAt("B", 116.05)
	b.Location.Lat = 39.95

	segments := SegmentRoute(route, []models.Stop{a, b})
	require.Len(t, segments, 1)
	assert.Equal(t, geometry.Polyline{a.Location, b.Location}, segments[0].Geometry)
	assert.Greater(t, segments[0].DistanceKm, 0.0)
}

func TestSegmentRouteDistancesAlongStraightTrajectory(t *testing.T) {
	// 12 km due north; stops at 0, 5 and 12 km along the line
	const degPerKm = 1.0 / 111.195
	route := models.Route{
		RouteID: "R1",
		CityEN:  "beijing",
		Trajectory: geometry.Polyline{
			{Lon: 116.0, Lat: 39.90},
			{Lon: 116.0, Lat: 39.90 + 12*degPerKm},
		},
	}

	mkStop := func(id string, km float64) models.Stop {
		return models.Stop{
			StopID:   id,
			RouteID:  "R1",
			Location: geometry.Point{Lon: 116.0, Lat: 39.90 + km*degPerKm},
		}
	}

	segments := SegmentRoute(route, []models.Stop{
		mkStop("A", 0), mkStop("B", 5), mkStop("C", 12),
	})
	require.Len(t, segments, 2)
	assert.InDelta(t, 5.0, segments[0].DistanceKm, 0.05)
	assert.InDelta(t, 7.0, segments[1].DistanceKm, 0.05)
}

func TestSegmentRouteSkipsUnresolvableStops(t *testing.T) {
	route := testRoute()

	broken := stopAt("X", 116.06)
	broken.Location = geometry.Point{Lon: math.NaN(), Lat: math.NaN()}

	// Only one stop resolves, so no segments are produced
	segments := SegmentRoute(route, []models.Stop{stopAt("A", 116.00), broken})
	assert.Nil(t, segments)
}

func TestSegmentRouteCountInvariant(t *testing.T) {
	route := testRoute()

	var stops []models.Stop
	lons := []float64{116.00, 116.03, 116.06, 116.09, 116.12, 116.15}
	ids := []string{"A", "B", "C", "D", "E", "F"}
	for i, lon := range lons {
		stops = append(stops, stopAt(ids[i], lon))
	}

	segments := SegmentRoute(route, stops)
	assert.Len(t, segments, len(stops)-1)
}
