package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/transit-network-go/internal/models"
)

// ReportRepository handles database operations for per-city processing reports
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SaveCityResult stores one city's processing tally for a run
func (r *ReportRepository) SaveCityResult(runID string, mode string, result *models.CityResult) error {
	query := `
		INSERT INTO city_reports (
			run_id, mode, city_en, city_pinyin, routes_processed, routes_failed,
			segments_count, unique_segments, stops_count,
			total_length_km, min_distance_km, max_distance_km,
			median_distance_km, stddev_distance_km, success, reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	success := 0
	if result.Success {
		success = 1
	}

	_, err := r.db.Exec(query,
		runID,
		mode,
		result.CityEN,
		result.CityPinyin,
		result.RoutesProcessed,
		result.RoutesFailed,
		result.SegmentsGenerated,
		result.UniqueSegments,
		result.UniqueStops,
		result.TotalLengthKm,
		result.MinDistanceKm,
		result.MaxDistanceKm,
		result.MedianDistanceKm,
		result.StdDevDistanceKm,
		success,
		result.Reason,
	)

	if err != nil {
		return fmt.Errorf("failed to save city result for %s: %w", result.CityEN, err)
	}

	return nil
}

// ListByRun retrieves all city results for a run
func (r *ReportRepository) ListByRun(runID string) ([]*models.CityResult, error) {
	query := `
		SELECT city_en, city_pinyin, routes_processed, routes_failed,
			   segments_count, unique_segments, stops_count,
			   total_length_km, min_distance_km, max_distance_km,
			   median_distance_km, stddev_distance_km, success, reason
		FROM city_reports
		WHERE run_id = ?
		ORDER BY city_en
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list city results: %w", err)
	}
	defer rows.Close()

	var results []*models.CityResult
	for rows.Next() {
		result := &models.CityResult{}
		var success int
		var reason sql.NullString
		err := rows.Scan(
			&result.CityEN,
			&result.CityPinyin,
			&result.RoutesProcessed,
			&result.RoutesFailed,
			&result.SegmentsGenerated,
			&result.UniqueSegments,
			&result.UniqueStops,
			&result.TotalLengthKm,
			&result.MinDistanceKm,
			&result.MaxDistanceKm,
			&result.MedianDistanceKm,
			&result.StdDevDistanceKm,
			&success,
			&reason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan city result: %w", err)
		}
		result.Success = success == 1
		result.Reason = reason.String
		results = append(results, result)
	}

	return results, nil
}
