package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jengzang/transit-network-go/internal/database"
	"github.com/jengzang/transit-network-go/internal/geometry"
	"github.com/jengzang/transit-network-go/internal/models"
)

// Column width limits applied at the persistence boundary. Upstream code
// carries full-length values; only stored rows are truncated.
const (
	maxNameLen = 80
	maxIDLen   = 50
	maxCityLen = 30
)

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SegmentRepository handles database operations for aggregated segments
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// ReplaceCity deletes and re-inserts all segments for one city and mode
// inside a single transaction, so re-running a city never duplicates rows
func (r *SegmentRepository) ReplaceCity(mode string, cityEN string, segments []models.AggregatedSegment) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM aggregated_segments WHERE mode = ? AND city_en = ?", mode, cityEN); err != nil {
			return fmt.Errorf("failed to clear segments for %s: %w", cityEN, err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO aggregated_segments (
				mode, s_stopid, s_stop_cn, s_stop_en,
				e_stopid, e_stop_cn, e_stop_en,
				distance, num, city_cn, city_en, geometry
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare segment insert: %w", err)
		}
		defer stmt.Close()

		for i := range segments {
			seg := &segments[i]
			geomJSON, err := json.Marshal(seg.Geometry)
			if err != nil {
				return fmt.Errorf("failed to marshal segment geometry: %w", err)
			}

			_, err = stmt.Exec(
				mode,
				truncate(seg.StartStopID, maxIDLen),
				truncate(seg.StartNameCN, maxNameLen),
				truncate(seg.StartNameEN, maxNameLen),
				truncate(seg.EndStopID, maxIDLen),
				truncate(seg.EndNameCN, maxNameLen),
				truncate(seg.EndNameEN, maxNameLen),
				seg.DistanceKm,
				seg.UsageCount,
				truncate(seg.CityCN, maxNameLen),
				truncate(seg.CityEN, maxCityLen),
				string(geomJSON),
			)
			if err != nil {
				return fmt.Errorf("failed to insert segment %s->%s: %w", seg.StartStopID, seg.EndStopID, err)
			}
		}

		return nil
	})
}

// List retrieves aggregated segments matching the filter, newest first
func (r *SegmentRepository) List(mode string, filter *models.SegmentFilter) ([]*models.AggregatedSegment, int, error) {
	where := " WHERE mode = ?"
	args := []interface{}{mode}

	if filter.CityEN != "" {
		where += " AND city_en = ?"
		args = append(args, filter.CityEN)
	}
	if filter.StopID != "" {
		where += " AND (s_stopid = ? OR e_stopid = ?)"
		args = append(args, filter.StopID, filter.StopID)
	}
	if filter.MinDistance > 0 {
		where += " AND distance >= ?"
		args = append(args, filter.MinDistance)
	}
	if filter.MaxDistance > 0 {
		where += " AND distance <= ?"
		args = append(args, filter.MaxDistance)
	}
	if filter.MinUsage > 0 {
		where += " AND num >= ?"
		args = append(args, filter.MinUsage)
	}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM aggregated_segments"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count segments: %w", err)
	}

	query := `
		SELECT id, s_stopid, s_stop_cn, s_stop_en,
			   e_stopid, e_stop_cn, e_stop_en,
			   distance, num, city_cn, city_en, geometry
		FROM aggregated_segments
	` + where + " ORDER BY id LIMIT ? OFFSET ?"

	limit := filter.PageSize
	if limit <= 0 {
		limit = 100
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list segments: %w", err)
	}
	defer rows.Close()

	var segments []*models.AggregatedSegment
	for rows.Next() {
		seg := &models.AggregatedSegment{}
		var geomJSON string
		err := rows.Scan(
			&seg.ID,
			&seg.StartStopID,
			&seg.StartNameCN,
			&seg.StartNameEN,
			&seg.EndStopID,
			&seg.EndNameCN,
			&seg.EndNameEN,
			&seg.DistanceKm,
			&seg.UsageCount,
			&seg.CityCN,
			&seg.CityEN,
			&geomJSON,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan segment: %w", err)
		}
		if geomJSON != "" {
			var line geometry.Polyline
			if err := json.Unmarshal([]byte(geomJSON), &line); err == nil {
				seg.Geometry = line
			}
		}
		segments = append(segments, seg)
	}

	return segments, total, nil
}

// Cities returns the distinct city names with persisted segments for a mode
func (r *SegmentRepository) Cities(mode string) ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT city_en FROM aggregated_segments WHERE mode = ? ORDER BY city_en", mode)
	if err != nil {
		return nil, fmt.Errorf("failed to list segment cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}

	return cities, nil
}

// CountByCity returns segment counts grouped by city for a mode
func (r *SegmentRepository) CountByCity(mode string) (map[string]int, error) {
	rows, err := r.db.Query("SELECT city_en, COUNT(*) FROM aggregated_segments WHERE mode = ? GROUP BY city_en", mode)
	if err != nil {
		return nil, fmt.Errorf("failed to count segments by city: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var city string
		var count int
		if err := rows.Scan(&city, &count); err != nil {
			return nil, fmt.Errorf("failed to scan segment count: %w", err)
		}
		counts[city] = count
	}

	return counts, nil
}
