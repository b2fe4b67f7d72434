// Package ingest loads and cleans raw per-city transit records collected by
// the crawler: enhanced CSV files holding route metadata with JSON-embedded
// trajectory vertex lists and stop lists. Records are normalized to WGS84
// and validated before they reach the segmentation core.
package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/transform"
)

// LoadStats counts what happened during one city load
type LoadStats struct {
	RoutesLoaded       int `json:"routes_loaded"`
	RoutesFiltered     int `json:"routes_filtered"`
	RoutesInvalid      int `json:"routes_invalid"`
	StopsLoaded        int `json:"stops_loaded"`
	StopsSkipped       int `json:"stops_skipped"`
	HeaderRowsDropped  int `json:"header_rows_dropped"`
	InvalidCoordinates int `json:"invalid_coordinates"`
}

// Loader reads raw city data for one pipeline mode
type Loader struct {
	mode config.Mode
}

// NewLoader creates a loader for the given pipeline mode
func NewLoader(mode config.Mode) *Loader {
	return &Loader{mode: mode}
}

// LoadCity reads every enhanced CSV under cityDir and returns cleaned routes
// and per-route stop occurrences tagged with cityEN
func (l *Loader) LoadCity(cityDir, cityEN string) ([]models.Route, []models.Stop, LoadStats, error) {
	var stats LoadStats

	files, err := filepath.Glob(filepath.Join(cityDir, "*_enhanced.csv"))
	if err != nil {
		return nil, nil, stats, fmt.Errorf("failed to scan %s: %w", cityDir, err)
	}
	if len(files) == 0 {
		return nil, nil, stats, fmt.Errorf("no enhanced data files in %s", cityDir)
	}

	var routes []models.Route
	var stops []models.Stop
	seenRoutes := make(map[string]bool)

	for _, file := range files {
		records, dropped, err := readRecords(file)
		if err != nil {
			log.Printf("Failed to load enhanced file %s: %v", file, err)
			continue
		}
		stats.HeaderRowsDropped += dropped

		log.Printf("Loading enhanced data: %s (city: %s, %d records)", filepath.Base(file), cityEN, len(records))

		for _, rec := range records {
			routeID := strings.TrimSpace(rec["route_id"])
			if routeID == "" {
				continue
			}
			if seenRoutes[routeID] {
				continue
			}

			if l.excluded(rec["route_type"]) {
				stats.RoutesFiltered++
				continue
			}

			route, routeStops, ok := l.buildRoute(rec, routeID, cityEN, &stats)
			if !ok {
				stats.RoutesInvalid++
				continue
			}

			seenRoutes[routeID] = true
			routes = append(routes, route)
			stops = append(stops, routeStops...)
			stats.RoutesLoaded++
			stats.StopsLoaded += len(routeStops)
		}
	}

	return routes, stops, stats, nil
}

// excluded reports whether the route type belongs to a different transit
// system. An unknown type is kept.
func (l *Loader) excluded(routeType string) bool {
	routeType = strings.TrimSpace(routeType)
	if routeType == "" {
		return false
	}
	for _, t := range l.mode.ExcludedTypes {
		if strings.Contains(routeType, t) {
			return true
		}
	}
	return false
}

func (l *Loader) buildRoute(rec record, routeID, cityEN string, stats *LoadStats) (models.Route, []models.Stop, bool) {
	cityCN := strings.TrimSpace(rec["city_name_cn"])

	trajectory := l.parseTrajectory(rec, cityCN, stats)
	if !trajectory.IsCurve() {
		log.Printf("Route %s has no usable trajectory, skipping", routeID)
		return models.Route{}, nil, false
	}

	route := models.Route{
		RouteID:    routeID,
		NameCN:     strings.TrimSpace(rec["route_name_cn"]),
		NameEN:     strings.TrimSpace(rec["route_name_en"]),
		CityCN:     cityCN,
		CityEN:     cityEN,
		RouteType:  strings.TrimSpace(rec["route_type"]),
		CityCode:   FormatCityCode(rec["city_code"]),
		Trajectory: trajectory,
	}

	return route, l.parseStops(rec, route, stats), true
}

// parseTrajectory decodes the JSON vertex list; the column is named
// "coordinates" in newer collections and "polyline" in older ones
func (l *Loader) parseTrajectory(rec record, cityCN string, stats *LoadStats) geometry.Polyline {
	raw := rec["coordinates"]
	if raw == "" {
		raw = rec["polyline"]
	}

	pairs := parseCoordinateList(raw)

	line := make(geometry.Polyline, 0, len(pairs))
	for _, pair := range pairs {
		pt, ok := l.normalizePoint(pair[0], pair[1], cityCN)
		if !ok {
			stats.InvalidCoordinates++
			continue
		}
		line = append(line, pt)
	}
	return line
}

// rawStop is the JSON shape of one stop entry inside the enhanced CSV
type rawStop struct {
	Name         string      `json:"name"`
	NameEN       string      `json:"name_en"`
	ID           string      `json:"id"`
	StopUniqueID string      `json:"stop_unique_id"`
	Location     string      `json:"location"` // "lon,lat"
	Sequence     json.Number `json:"sequence"`
}

func (l *Loader) parseStops(rec record, route models.Route, stats *LoadStats) []models.Stop {
	raw := rec["bus_stops"]
	if raw == "" {
		raw = rec["stops"]
	}
	if raw == "" {
		return nil
	}

	var entries []rawStop
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("Route %s stop list unparseable: %v", route.RouteID, err)
		return nil
	}

	seen := make(map[string]bool)
	var stops []models.Stop
	for _, entry := range entries {
		stopID := entry.StopUniqueID
		if stopID == "" {
			stopID = entry.ID
		}
		if stopID == "" || seen[stopID] {
			stats.StopsSkipped++
			continue
		}

		lon, lat, ok := parseLocation(entry.Location)
		if !ok {
			stats.StopsSkipped++
			continue
		}
		pt, ok := l.normalizePoint(lon, lat, route.CityCN)
		if !ok {
			stats.InvalidCoordinates++
			stats.StopsSkipped++
			continue
		}

		seq, _ := entry.Sequence.Int64()
		seen[stopID] = true
		stops = append(stops, models.Stop{
			StopID:   stopID,
			RouteID:  route.RouteID,
			NameCN:   entry.Name,
			NameEN:   entry.NameEN,
			CityCN:   route.CityCN,
			CityEN:   route.CityEN,
			Sequence: int(seq),
			Location: pt,
		})
	}
	return stops
}

// normalizePoint converts a source-CRS coordinate to WGS84, repairs the
// known Taiwan collection defect and validates China-territory bounds
func (l *Loader) normalizePoint(lon, lat float64, cityCN string) (geometry.Point, bool) {
	switch l.mode.SourceCRS {
	case "gcj02":
		lon, lat = transform.GCJ02ToWGS84(lon, lat)
	case "bd09":
		lon, lat = transform.BD09ToWGS84(lon, lat)
	}

	// Taiwan stations were double-converted upstream; undo one step
	if strings.Contains(cityCN, "台湾") {
		lon, lat = transform.WGS84ToGCJ02(lon, lat)
	}

	if !ValidCoordinates(lon, lat) {
		return geometry.Point{}, false
	}
	return geometry.Point{Lon: lon, Lat: lat}, true
}

// ValidCoordinates checks WGS84 bounds for Chinese territory
func ValidCoordinates(lon, lat float64) bool {
	return lon >= 70 && lon <= 140 && lat >= 15 && lat <= 55
}

// FormatCityCode keeps city codes as strings, restoring leading zeros
// stripped by spreadsheet round-trips
func FormatCityCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if _, err := strconv.Atoi(code); err == nil && len(code) < 3 {
		return strings.Repeat("0", 3-len(code)) + code
	}
	return code
}

// parseCoordinateList accepts either a JSON [[lon,lat],...] array or the
// legacy "lon,lat;lon,lat" string form
func parseCoordinateList(raw string) [][2]float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var pairs [][]json.Number
		if err := json.Unmarshal([]byte(raw), &pairs); err == nil {
			out := make([][2]float64, 0, len(pairs))
			for _, p := range pairs {
				if len(p) < 2 {
					continue
				}
				lon, err1 := p[0].Float64()
				lat, err2 := p[1].Float64()
				if err1 != nil || err2 != nil {
					continue
				}
				out = append(out, [2]float64{lon, lat})
			}
			return out
		}
		return nil
	}

	var out [][2]float64
	for _, part := range strings.Split(raw, ";") {
		if lon, lat, ok := parseLocation(part); ok {
			out = append(out, [2]float64{lon, lat})
		}
	}
	return out
}

// parseLocation parses a "lon,lat" pair
func parseLocation(s string) (float64, float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lon, lat, true
}
