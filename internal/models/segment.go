package models

import "github.com/jengzang/transit-network-go/internal/geometry"

// Segment represents the directed edge between two consecutive stops on one
// specific route's curve. Ephemeral: produced per route during segmentation
// and consumed by aggregation; only the aggregated form is persisted.
type Segment struct {
	StartStopID string `json:"s_stopid" db:"s_stopid"`
	StartNameCN string `json:"s_stop_cn" db:"s_stop_cn"`
	StartNameEN string `json:"s_stop_en" db:"s_stop_en"`

	EndStopID string `json:"e_stopid" db:"e_stopid"`
	EndNameCN string `json:"e_stop_cn" db:"e_stop_cn"`
	EndNameEN string `json:"e_stop_en" db:"e_stop_en"`

	// DistanceKm is the geodesic segment length in kilometers (3 decimals)
	DistanceKm float64 `json:"distance" db:"distance"`

	CityCN string `json:"city_cn" db:"city_cn"`
	CityEN string `json:"city_en" db:"city_en"`

	Geometry geometry.Polyline `json:"geometry"`
}

// AggregatedSegment is the deduplicated network edge: all segments sharing
// the same stop pair merged into one record
type AggregatedSegment struct {
	ID int64 `json:"id,omitempty" db:"id"`

	StartStopID string `json:"s_stopid" db:"s_stopid"`
	StartNameCN string `json:"s_stop_cn" db:"s_stop_cn"`
	StartNameEN string `json:"s_stop_en" db:"s_stop_en"`

	EndStopID string `json:"e_stopid" db:"e_stopid"`
	EndNameCN string `json:"e_stop_cn" db:"e_stop_cn"`
	EndNameEN string `json:"e_stop_en" db:"e_stop_en"`

	// DistanceKm is the arithmetic mean of member distances (3 decimals)
	DistanceKm float64 `json:"distance" db:"distance"`

	// UsageCount is the number of contributing segments, i.e. routes
	// traversing this edge
	UsageCount int `json:"num" db:"num"`

	// CityCN is the semicolon-joined set of distinct contributing city tags
	// in encounter order
	CityCN string `json:"city_cn" db:"city_cn"`
	CityEN string `json:"city_en" db:"city_en"`

	Geometry geometry.Polyline `json:"geometry"`
}

// UniqueStop is the deduplicated stop-node record
type UniqueStop struct {
	ID int64 `json:"id,omitempty" db:"id"`

	StopID string `json:"stop_id" db:"stop_id"`
	NameCN string `json:"stop_cn" db:"stop_cn"`
	NameEN string `json:"stop_en" db:"stop_en"`

	// UsageCount is the number of distinct routes referencing this stop id
	UsageCount int `json:"num" db:"num"`

	CityCN string `json:"city_cn" db:"city_cn"`
	CityEN string `json:"city_en" db:"city_en"`

	Location geometry.Point `json:"location"`
}
