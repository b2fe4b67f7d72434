package network

import (
	"fmt"
	"log"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/stats"
)

// CityOutput bundles one city's processed network
type CityOutput struct {
	Segments []models.AggregatedSegment
	Stops    []models.UniqueStop
	Result   models.CityResult
}

// ProcessCity runs segmentation over every route tagged with cityEN and
// returns the aggregated edge set plus the deduplicated stop set. Only
// routes and stop occurrences carrying the city tag participate; identifiers
// are never compared across cities. A failure on one route is logged and
// does not abort the rest of the city. A city without routes returns empty
// results, recorded as a failure reason rather than an error.
func ProcessCity(cityEN string, routes []models.Route, occurrences []models.Stop, policy KeyPolicy) CityOutput {
	log.Printf("Processing city: %s", cityEN)

	cityRoutes := make([]models.Route, 0)
	for _, route := range routes {
		if route.CityEN == cityEN {
			cityRoutes = append(cityRoutes, route)
		}
	}

	cityStops := make([]models.Stop, 0)
	stopsByRoute := make(map[string][]models.Stop)
	for _, occurrence := range occurrences {
		if occurrence.CityEN != cityEN {
			continue
		}
		cityStops = append(cityStops, occurrence)
		stopsByRoute[occurrence.RouteID] = append(stopsByRoute[occurrence.RouteID], occurrence)
	}

	log.Printf("City routes: %d, city stops: %d", len(cityRoutes), len(cityStops))

	result := models.CityResult{CityEN: cityEN}

	if len(cityRoutes) == 0 {
		log.Printf("No route data for city %s, skipping", cityEN)
		result.Reason = "no routes for city"
		return CityOutput{Result: result}
	}

	var allSegments []models.Segment
	for _, route := range cityRoutes {
		segments, err := segmentRouteSafe(route, stopsByRoute[route.RouteID])
		if err != nil {
			result.RoutesFailed++
			log.Printf("Failed to process route %s (ID: %s): %v", route.NameCN, route.RouteID, err)
			continue
		}
		allSegments = append(allSegments, segments...)
		result.RoutesProcessed++

		if result.RoutesProcessed%50 == 0 {
			log.Printf("Processed %d/%d routes", result.RoutesProcessed, len(cityRoutes))
		}
	}

	log.Printf("Route processing complete: success %d, failed %d, segments %d",
		result.RoutesProcessed, result.RoutesFailed, len(allSegments))

	aggregated := Aggregate(allSegments, policy)
	uniques := DeduplicateStops(cityStops)

	result.SegmentsGenerated = len(allSegments)
	result.UniqueSegments = len(aggregated)
	result.UniqueStops = len(uniques)

	if len(aggregated) > 0 {
		distances := make([]float64, len(aggregated))
		for i := range aggregated {
			distances[i] = aggregated[i].DistanceKm
		}
		result.TotalLengthKm = geometry.Round3(stats.Sum(distances))
		result.MinDistanceKm = stats.Min(distances)
		result.MaxDistanceKm = stats.Max(distances)
		result.MedianDistanceKm = geometry.Round3(stats.Median(distances))
		result.StdDevDistanceKm = geometry.Round3(stats.StdDev(distances))
	}
	result.Success = len(allSegments) > 0
	if !result.Success {
		result.Reason = "no segments generated"
	}

	return CityOutput{
		Segments: aggregated,
		Stops:    uniques,
		Result:   result,
	}
}

// segmentRouteSafe isolates a per-route failure so one bad route cannot
// abort its siblings
func segmentRouteSafe(route models.Route, stops []models.Stop) (segments []models.Segment, err error) {
	defer func() {
		if r := recover(); r != nil {
			segments = nil
			err = &routeError{route: route.RouteID, cause: r}
		}
	}()

	return SegmentRoute(route, stops), nil
}

// routeError wraps a recovered per-route panic
type routeError struct {
	route string
	cause interface{}
}

func (e *routeError) Error() string {
	return fmt.Sprintf("route %s segmentation failed: %v", e.route, e.cause)
}
