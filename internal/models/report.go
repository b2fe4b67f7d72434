package models

import "time"

// CityResult captures one city's processing tally
type CityResult struct {
	CityEN     string `json:"city_en"`
	CityPinyin string `json:"city_pinyin"`

	RoutesProcessed   int `json:"routes_processed"`
	RoutesFailed      int `json:"routes_failed"`
	StopsSkipped      int `json:"stops_skipped"`
	SegmentsGenerated int `json:"segments_count"`
	UniqueSegments    int `json:"unique_segments"`
	UniqueStops       int `json:"stops_count"`

	// Distance distribution over the city's unique segments, kilometers
	TotalLengthKm    float64 `json:"total_length_km"`
	MinDistanceKm    float64 `json:"min_distance_km"`
	MaxDistanceKm    float64 `json:"max_distance_km"`
	MedianDistanceKm float64 `json:"median_distance_km"`
	StdDevDistanceKm float64 `json:"stddev_distance_km"`

	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// GlobalStats accumulates pipeline-wide counters across all cities
type GlobalStats struct {
	TotalCities         int `json:"total_cities"`
	ProcessedCities     int `json:"processed_cities"`
	FailedCities        int `json:"failed_cities"`
	TotalRoutes         int `json:"total_routes"`
	TotalStops          int `json:"total_stops"`
	TotalSegments       int `json:"total_segments"`
	TotalUniqueSegments int `json:"total_unique_segments"`
	TotalUniqueStops    int `json:"total_unique_stops"`
}

// SummaryReport is the global processing report persisted as JSON and text
type SummaryReport struct {
	ProcessingInfo   ProcessingInfo `json:"processing_info"`
	GlobalStatistics GlobalStats    `json:"global_statistics"`
	CityResults      []CityResult   `json:"city_results"`
}

// ProcessingInfo describes one pipeline run
type ProcessingInfo struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Mode             string    `json:"mode"`
	CoordinateSystem string    `json:"coordinate_system"`
	ProcessingTime   time.Time `json:"processing_time"`
	InputPath        string    `json:"input_path"`
}
