package network

import (
	"log"
	"strings"

	"github.com/jengzang/transit-network-go/internal/models"
)

// stopGroup accumulates the occurrences of one stop id
type stopGroup struct {
	first    models.Stop
	routeIDs map[string]bool
	cities   []string
	citySeen map[string]bool
}

// DeduplicateStops collapses per-route stop occurrences into one record per
// stop id, counting the distinct routes referencing each stop. Occurrences
// without a stop id are skipped entirely. The first-encountered occurrence
// supplies the representative fields.
func DeduplicateStops(occurrences []models.Stop) []models.UniqueStop {
	groups := make(map[string]*stopGroup)
	order := make([]string, 0)

	for _, occurrence := range occurrences {
		if occurrence.StopID == "" {
			continue
		}

		group, exists := groups[occurrence.StopID]
		if !exists {
			group = &stopGroup{
				first:    occurrence,
				routeIDs: make(map[string]bool),
				citySeen: make(map[string]bool),
			}
			groups[occurrence.StopID] = group
			order = append(order, occurrence.StopID)
		}

		if occurrence.RouteID != "" {
			group.routeIDs[occurrence.RouteID] = true
			if !group.citySeen[occurrence.CityCN] {
				group.citySeen[occurrence.CityCN] = true
				group.cities = append(group.cities, occurrence.CityCN)
			}
		}
	}

	uniques := make([]models.UniqueStop, 0, len(order))
	for _, stopID := range order {
		group := groups[stopID]

		uniques = append(uniques, models.UniqueStop{
			StopID:     stopID,
			NameCN:     group.first.NameCN,
			NameEN:     group.first.NameEN,
			UsageCount: len(group.routeIDs),
			CityCN:     strings.Join(group.cities, "; "),
			CityEN:     group.first.CityEN,
			Location:   group.first.Location,
		})
	}

	log.Printf("Stop deduplication complete: %d -> %d stops", len(occurrences), len(uniques))

	return uniques
}
