package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
)

func TestProcessCityDerivesNetwork(t *testing.T) {
	route := testRoute()
	stops := []models.Stop{
		stopAt("A", 116.00),
		stopAt("B", 116.06),
		stopAt("C", 116.12),
	}

	output := ProcessCity("beijing", []models.Route{route}, stops, KeyDirectional)

	assert.True(t, output.Result.Success)
	assert.Equal(t, 1, output.Result.RoutesProcessed)
	assert.Equal(t, 0, output.Result.RoutesFailed)
	assert.Equal(t, 2, output.Result.SegmentsGenerated)
	assert.Len(t, output.Segments, 2)
	assert.Len(t, output.Stops, 3)
}

func TestProcessCityIgnoresOtherCities(t *testing.T) {
	local := testRoute()

	foreign := testRoute()
	foreign.RouteID = "R2"
	foreign.CityEN = "tianjin"

	stops := []models.Stop{
		stopAt("A", 116.00),
		stopAt("B", 116.06),
	}
	foreignStop := stopAt("A", 116.00)
	foreignStop.RouteID = "R2"
	foreignStop.CityEN = "tianjin"

	output := ProcessCity("beijing", []models.Route{local, foreign}, append(stops, foreignStop), KeyDirectional)

	assert.Equal(t, 1, output.Result.RoutesProcessed)
	require.Len(t, output.Stops, 2)
	for _, stop := range output.Stops {
		assert.Equal(t, "beijing", stop.CityEN)
	}
}

func TestProcessCityWithoutRoutes(t *testing.T) {
	output := ProcessCity("nowhere", nil, nil, KeyDirectional)

	assert.False(t, output.Result.Success)
	assert.Equal(t, "no routes for city", output.Result.Reason)
	assert.Empty(t, output.Segments)
	assert.Empty(t, output.Stops)
}

func TestProcessCitySurvivesBrokenRoute(t *testing.T) {
	good := testRoute()

	bad := testRoute()
	bad.RouteID = "R2"
	bad.Trajectory = nil

	stops := []models.Stop{
		stopAt("A", 116.00),
		stopAt("B", 116.06),
	}
	badStopA := stopAt("A", 116.00)
	badStopA.RouteID = "R2"
	badStopB := stopAt("B", 116.06)
	badStopB.RouteID = "R2"

	output := ProcessCity("beijing", []models.Route{good, bad}, append(stops, badStopA, badStopB), KeyDirectional)

	// The broken route yields nothing but the good route still processes
	assert.True(t, output.Result.Success)
	assert.GreaterOrEqual(t, output.Result.RoutesProcessed, 1)
	assert.NotEmpty(t, output.Segments)
}

func TestProcessCityAggregatesAcrossRoutes(t *testing.T) {
	r1 := testRoute()
	r2 := testRoute()
	r2.RouteID = "R2"

	var stops []models.Stop
	for _, routeID := range []string{"R1", "R2"} {
		a := stopAt("A", 116.00)
		a.RouteID = routeID
		b := stopAt("B", 116.06)
		b.RouteID = routeID
		stops = append(stops, a, b)
	}

	output := ProcessCity("beijing", []models.Route{r1, r2}, stops, KeyDirectional)

	require.Len(t, output.Segments, 1)
	assert.Equal(t, 2, output.Segments[0].UsageCount)

	require.Len(t, output.Stops, 2)
	assert.Equal(t, 2, output.Stops[0].UsageCount)
}

func TestProcessCityDistanceDistribution(t *testing.T) {
	// 12 km due north with stops at 0, 5 and 12 km, so the city network is
	// two unique segments of 5 and 7 km
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
			CityEN:   "beijing",
			Location: geometry.Point{Lon: 116.0, Lat: 39.90 + km*degPerKm},
		}
	}

	output := ProcessCity("beijing", []models.Route{route}, []models.Stop{
		mkStop("A", 0), mkStop("B", 5), mkStop("C", 12),
	}, KeyDirectional)

	result := output.Result
	require.Equal(t, 2, result.UniqueSegments)
	assert.InDelta(t, 12.0, result.TotalLengthKm, 0.05)
	assert.InDelta(t, 5.0, result.MinDistanceKm, 0.05)
	assert.InDelta(t, 7.0, result.MaxDistanceKm, 0.05)
	assert.InDelta(t, 6.0, result.MedianDistanceKm, 0.05)
	assert.InDelta(t, 1.414, result.StdDevDistanceKm, 0.05)
}

func TestProcessCityWithoutSegmentsHasZeroDistanceStats(t *testing.T) {
	output := ProcessCity("nowhere", nil, nil, KeyDirectional)

	assert.Equal(t, 0.0, output.Result.TotalLengthKm)
	assert.Equal(t, 0.0, output.Result.MinDistanceKm)
	assert.Equal(t, 0.0, output.Result.MedianDistanceKm)
}

func TestSegmentRouteSafePassthrough(t *testing.T) {
	route := models.Route{RouteID: "R9", Trajectory: geometry.Polyline{{Lon: 116.0, Lat: 39.9}, {Lon: 116.1, Lat: 39.9}}}

	segments, err := segmentRouteSafe(route, []models.Stop{
		{StopID: "A", RouteID: "R9", Location: geometry.Point{Lon: 116.0, Lat: 39.9}},
		{StopID: "B", RouteID: "R9", Location: geometry.Point{Lon: 116.1, Lat: 39.9}},
	})
	assert.NoError(t, err)
	assert.Len(t, segments, 1)
}
