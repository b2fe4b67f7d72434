package models

import "github.com/jengzang/transit-network-go/internal/geometry"

// Route represents one transit line's physical trajectory
type Route struct {
	RouteID string `json:"route_id" db:"route_id"`

	// Display names
	NameCN string `json:"name_cn" db:"name_cn"`
	NameEN string `json:"name_en" db:"name_en"`

	// City partition tags
	CityCN string `json:"city_cn" db:"city_cn"`
	CityEN string `json:"city_en" db:"city_en"`

	// Source metadata (provenance only, not used by the core)
	RouteType string `json:"route_type,omitempty" db:"route_type"`
	CityCode  string `json:"city_code,omitempty" db:"city_code"`

	// Trajectory geometry in WGS84
	Trajectory geometry.Polyline `json:"trajectory"`
}

// Stop represents one (route, stop) pairing from the source data.
// The same physical stop appears once per route serving it.
type Stop struct {
	StopID  string `json:"stop_id" db:"stop_id"`
	RouteID string `json:"route_id" db:"route_id"`

	NameCN string `json:"name_cn" db:"name_cn"`
	NameEN string `json:"name_en" db:"name_en"`

	CityCN string `json:"city_cn" db:"city_cn"`
	CityEN string `json:"city_en" db:"city_en"`

	// Sequence is the upstream ordering hint. It is unreliable and must not
	// be used for ordering; the true order is derived by curve projection.
	Sequence int `json:"sequence,omitempty" db:"sequence"`

	Location geometry.Point `json:"location"`
}
