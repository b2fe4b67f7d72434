package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/transit-network-go/internal/database"
	"github.com/jengzang/transit-network-go/internal/models"
)

// StopRepository handles database operations for unique stops
type StopRepository struct {
	db *sql.DB
}

// NewStopRepository creates a new stop repository
func NewStopRepository(db *sql.DB) *StopRepository {
	return &StopRepository{db: db}
}

// ReplaceCity deletes and re-inserts all stops for one city and mode
func (r *StopRepository) ReplaceCity(mode string, cityEN string, stops []models.UniqueStop) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM unique_stops WHERE mode = ? AND city_en = ?", mode, cityEN); err != nil {
			return fmt.Errorf("failed to clear stops for %s: %w", cityEN, err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO unique_stops (
				mode, stop_id, stop_cn, stop_en, num, city_cn, city_en, lon, lat
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare stop insert: %w", err)
		}
		defer stmt.Close()

		for i := range stops {
			stop := &stops[i]
			_, err = stmt.Exec(
				mode,
				truncate(stop.StopID, maxIDLen),
				truncate(stop.NameCN, maxNameLen),
				truncate(stop.NameEN, maxNameLen),
				stop.UsageCount,
				truncate(stop.CityCN, maxNameLen),
				truncate(stop.CityEN, maxCityLen),
				stop.Location.Lon,
				stop.Location.Lat,
			)
			if err != nil {
				return fmt.Errorf("failed to insert stop %s: %w", stop.StopID, err)
			}
		}

		return nil
	})
}

// List retrieves unique stops matching the filter
func (r *StopRepository) List(mode string, filter *models.StopFilter) ([]*models.UniqueStop, int, error) {
	where := " WHERE mode = ?"
	args := []interface{}{mode}

	if filter.CityEN != "" {
		where += " AND city_en = ?"
		args = append(args, filter.CityEN)
	}
	if filter.Name != "" {
		where += " AND (stop_cn LIKE ? OR stop_en LIKE ?)"
		pattern := "%" + filter.Name + "%"
		args = append(args, pattern, pattern)
	}
	if filter.MinUsage > 0 {
		where += " AND num >= ?"
		args = append(args, filter.MinUsage)
	}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM unique_stops"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stops: %w", err)
	}

	query := `
		SELECT id, stop_id, stop_cn, stop_en, num, city_cn, city_en, lon, lat
		FROM unique_stops
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
		return nil, 0, fmt.Errorf("failed to list stops: %w", err)
	}
	defer rows.Close()

	var stops []*models.UniqueStop
	for rows.Next() {
		stop := &models.UniqueStop{}
		err := rows.Scan(
			&stop.ID,
			&stop.StopID,
			&stop.NameCN,
			&stop.NameEN,
			&stop.UsageCount,
			&stop.CityCN,
			&stop.CityEN,
			&stop.Location.Lon,
			&stop.Location.Lat,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stop: %w", err)
		}
		stops = append(stops, stop)
	}

	return stops, total, nil
}

// CountByCity returns stop counts grouped by city for a mode
func (r *StopRepository) CountByCity(mode string) (map[string]int, error) {
	rows, err := r.db.Query("SELECT city_en, COUNT(*) FROM unique_stops WHERE mode = ? GROUP BY city_en", mode)
	if err != nil {
		return nil, fmt.Errorf("failed to count stops by city: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var city string
		var count int
		if err := rows.Scan(&city, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stop count: %w", err)
		}
		counts[city] = count
	}

	return counts, nil
}
