package network

import (
	"log"
	"sort"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
)

// projectedStop pairs a stop occurrence with its arc-length position along
// the owning route's trajectory
type projectedStop struct {
	stop     models.Stop
	position float64
}

// SegmentRoute breaks one route into segments between consecutive stops.
// Stops are ordered by their projected arc-length position along the
// trajectory; the upstream sequence hint is ignored. Stops that fail
// projection are logged and skipped. Routes with fewer than 2 resolvable
// stops or without a usable trajectory yield an empty result, not an error.
func SegmentRoute(route models.Route, stops []models.Stop) []models.Segment {
	if len(stops) < 2 {
		log.Printf("Route %s (ID: %s) has insufficient stops", route.NameCN, route.RouteID)
		return nil
	}

	if !route.Trajectory.IsCurve() {
		log.Printf("Route %s (ID: %s) has invalid geometry", route.NameCN, route.RouteID)
		return nil
	}

	projections := make([]projectedStop, 0, len(stops))
	for _, stop := range stops {
		position, ok := geometry.Project(stop.Location, route.Trajectory)
		if !ok {
			log.Printf("Stop %s projection failed on route %s", stop.NameCN, route.RouteID)
			continue
		}
		projections = append(projections, projectedStop{stop: stop, position: position})
	}

	if len(projections) < 2 {
		log.Printf("Route %s (ID: %s) has insufficient resolvable stops", route.NameCN, route.RouteID)
		return nil
	}

	// Authoritative stop order along the curve
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].position < projections[j].position
	})

	segments := make([]models.Segment, 0, len(projections)-1)
	for i := 0; i < len(projections)-1; i++ {
		start := projections[i]
		end := projections[i+1]

		segmentLine, ok := geometry.Slice(route.Trajectory, start.position, end.position)
		if !ok {
			// Direct connection fallback when the slice is degenerate
			segmentLine = geometry.Polyline{start.stop.Location, end.stop.Location}
		}

		segments = append(segments, models.Segment{
			StartStopID: start.stop.StopID,
			StartNameCN: start.stop.NameCN,
			StartNameEN: start.stop.NameEN,
			EndStopID:   end.stop.StopID,
			EndNameCN:   end.stop.NameCN,
			EndNameEN:   end.stop.NameEN,
			DistanceKm:  geometry.LengthKm(segmentLine),
			CityCN:      route.CityCN,
			CityEN:      route.CityEN,
			Geometry:    segmentLine,
		})
	}

	return segments
}
