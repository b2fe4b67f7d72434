package network

import (
	"log"
	"strings"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/stats"
)

// KeyPolicy controls how the aggregation key treats direction. The source
// data does not make the intent explicit, so directional grouping is the
// default and undirected merging is available as a policy switch.
type KeyPolicy string

// Key policies
const (
	KeyDirectional KeyPolicy = "directional"
	KeyUndirected  KeyPolicy = "undirected"
)

// segmentGroup accumulates the members of one aggregation key
type segmentGroup struct {
	first     models.Segment
	distances []float64
	cities    []string
	citySeen  map[string]bool
}

// Aggregate merges segments sharing the same (start stop id, end stop id)
// key into one edge record carrying the contributing-route count and the
// arithmetic mean of member distances. The first-encountered member supplies
// the representative fields; city tags join in encounter order without
// duplicates. Deterministic for a deterministic input order.
func Aggregate(segments []models.Segment, policy KeyPolicy) []models.AggregatedSegment {
	groups := make(map[string]*segmentGroup)
	order := make([]string, 0)

	for _, segment := range segments {
		key := aggregationKey(segment, policy)

		group, exists := groups[key]
		if !exists {
			group = &segmentGroup{
				first:    segment,
				citySeen: make(map[string]bool),
			}
			groups[key] = group
			order = append(order, key)
		}

		group.distances = append(group.distances, segment.DistanceKm)
		if !group.citySeen[segment.CityCN] {
			group.citySeen[segment.CityCN] = true
			group.cities = append(group.cities, segment.CityCN)
		}
	}

	aggregated := make([]models.AggregatedSegment, 0, len(order))
	for _, key := range order {
		group := groups[key]
		first := group.first

		aggregated = append(aggregated, models.AggregatedSegment{
			StartStopID: first.StartStopID,
			StartNameCN: first.StartNameCN,
			StartNameEN: first.StartNameEN,
			EndStopID:   first.EndStopID,
			EndNameCN:   first.EndNameCN,
			EndNameEN:   first.EndNameEN,
			DistanceKm:  geometry.Round3(stats.Mean(group.distances)),
			UsageCount:  len(group.distances),
			CityCN:      strings.Join(group.cities, "; "),
			CityEN:      first.CityEN,
			Geometry:    first.Geometry.Clone(),
		})
	}

	log.Printf("Aggregation complete: %d -> %d segments", len(segments), len(aggregated))

	return aggregated
}

// aggregationKey builds the grouping key for a segment. Under the undirected
// policy the endpoint ids are ordered lexicographically so that A->B and
// B->A fall into the same group.
func aggregationKey(segment models.Segment, policy KeyPolicy) string {
	start, end := segment.StartStopID, segment.EndStopID
	if policy == KeyUndirected && end < start {
		start, end = end, start
	}
	return start + "\x1f" + end
}
