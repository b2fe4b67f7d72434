package models

// SegmentFilter represents filter parameters for querying aggregated segments
type SegmentFilter struct {
	CityEN      string  `form:"city"`
	StopID      string  `form:"stopId"`      // Matches either endpoint
	MinDistance float64 `form:"minDistance"` // Kilometers
	MaxDistance float64 `form:"maxDistance"` // Kilometers
	MinUsage    int     `form:"minUsage"`    // Minimum contributing routes
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}

// StopFilter represents filter parameters for querying unique stops
type StopFilter struct {
	CityEN   string `form:"city"`
	Name     string `form:"name"` // Substring match on either name field
	MinUsage int    `form:"minUsage"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
