package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
)

func occurrence(stopID, routeID string) models.Stop {
	return models.Stop{
		StopID:   stopID,
		RouteID:  routeID,
		NameCN:   "站" + stopID,
		CityCN:   "北京市",
		CityEN:   "beijing",
		Location: geometry.Point{Lon: 116.0, Lat: 39.9},
	}
}

func TestDeduplicateStopsCountsDistinctRoutes(t *testing.T) {
	occurrences := []models.Stop{
		occurrence("S1", "R1"),
		occurrence("S1", "R2"),
		occurrence("S1", "R2"), // same route twice
		occurrence("S2", "R1"),
	}

	uniques := DeduplicateStops(occurrences)
	require.Len(t, uniques, 2)

	assert.Equal(t, "S1", uniques[0].StopID)
	assert.Equal(t, 2, uniques[0].UsageCount)
	assert.Equal(t, "S2", uniques[1].StopID)
	assert.Equal(t, 1, uniques[1].UsageCount)
}

func TestDeduplicateStopsSkipsEmptyIDs(t *testing.T) {
	occurrences := []models.Stop{
		occurrence("", "R1"),
		occurrence("S1", "R1"),
	}

	uniques := DeduplicateStops(occurrences)
	require.Len(t, uniques, 1)
	assert.Equal(t, "S1", uniques[0].StopID)
}

func TestDeduplicateStopsFirstOccurrenceWins(t *testing.T) {
	first := occurrence("S1", "R1")
	first.NameCN = "首体"
	second := occurrence("S1", "R2")
	second.NameCN = "别名"

	uniques := DeduplicateStops([]models.Stop{first, second})
	require.Len(t, uniques, 1)
	assert.Equal(t, "首体", uniques[0].NameCN)
	assert.Equal(t, first.Location, uniques[0].Location)
}

func TestDeduplicateStopsIdempotent(t *testing.T) {
	occurrences := []models.Stop{
		occurrence("S1", "R1"),
		occurrence("S2", "R1"),
		occurrence("S1", "R2"),
	}

	first := DeduplicateStops(occurrences)
	second := DeduplicateStops(occurrences)
	assert.Equal(t, first, second)
}

func TestDeduplicateStopsStableOnOwnOutput(t *testing.T) {
	occurrences := []models.Stop{
		occurrence("S1", "R1"),
		occurrence("S1", "R2"),
		occurrence("S2", "R1"),
	}

	uniques := DeduplicateStops(occurrences)

	// Feeding each unique stop back as a single occurrence keeps the set
	refed := make([]models.Stop, 0, len(uniques))
	for _, u := range uniques {
		refed = append(refed, models.Stop{
			StopID:   u.StopID,
			RouteID:  "R1",
			NameCN:   u.NameCN,
			NameEN:   u.NameEN,
			CityCN:   u.CityCN,
			CityEN:   u.CityEN,
			Location: u.Location,
		})
	}

	again := DeduplicateStops(refed)
	require.Len(t, again, len(uniques))
	for i := range again {
		assert.Equal(t, uniques[i].StopID, again[i].StopID)
		assert.Equal(t, uniques[i].NameCN, again[i].NameCN)
	}
}

func TestDeduplicateStopsEmptyInput(t *testing.T) {
	assert.Empty(t, DeduplicateStops(nil))
}
