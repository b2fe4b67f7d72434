package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded so the binary is self-contained
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_network_tables",
		SQL: `
			CREATE TABLE IF NOT EXISTS aggregated_segments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				mode TEXT NOT NULL,
				s_stopid TEXT NOT NULL,
				s_stop_cn TEXT,
				s_stop_en TEXT,
				e_stopid TEXT NOT NULL,
				e_stop_cn TEXT,
				e_stop_en TEXT,
				distance REAL NOT NULL DEFAULT 0,
				num INTEGER NOT NULL DEFAULT 0,
				city_cn TEXT,
				city_en TEXT NOT NULL,
				geometry TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_segments_city ON aggregated_segments(mode, city_en);
			CREATE INDEX IF NOT EXISTS idx_segments_stops ON aggregated_segments(s_stopid, e_stopid);

			CREATE TABLE IF NOT EXISTS unique_stops (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				mode TEXT NOT NULL,
				stop_id TEXT NOT NULL,
				stop_cn TEXT,
				stop_en TEXT,
				num INTEGER NOT NULL DEFAULT 0,
				city_cn TEXT,
				city_en TEXT NOT NULL,
				lon REAL NOT NULL,
				lat REAL NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_stops_city ON unique_stops(mode, city_en);
			CREATE INDEX IF NOT EXISTS idx_stops_stop_id ON unique_stops(stop_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_processing_runs",
		SQL: `
			CREATE TABLE IF NOT EXISTS processing_runs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL UNIQUE,
				mode TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				total_cities INTEGER NOT NULL DEFAULT 0,
				processed_cities INTEGER NOT NULL DEFAULT 0,
				failed_cities INTEGER NOT NULL DEFAULT 0,
				result_summary TEXT,
				error_message TEXT,
				start_time INTEGER,
				end_time INTEGER,
				created_by TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS city_reports (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL,
				mode TEXT NOT NULL,
				city_en TEXT NOT NULL,
				city_pinyin TEXT,
				routes_processed INTEGER NOT NULL DEFAULT 0,
				routes_failed INTEGER NOT NULL DEFAULT 0,
				segments_count INTEGER NOT NULL DEFAULT 0,
				unique_segments INTEGER NOT NULL DEFAULT 0,
				stops_count INTEGER NOT NULL DEFAULT 0,
				success INTEGER NOT NULL DEFAULT 0,
				reason TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_city_reports_run ON city_reports(run_id);
		`,
	},
	{
		Version: 3,
		Name:    "add_city_distance_stats",
		SQL: `
			ALTER TABLE city_reports ADD COLUMN total_length_km REAL NOT NULL DEFAULT 0;
			ALTER TABLE city_reports ADD COLUMN min_distance_km REAL NOT NULL DEFAULT 0;
			ALTER TABLE city_reports ADD COLUMN max_distance_km REAL NOT NULL DEFAULT 0;
			ALTER TABLE city_reports ADD COLUMN median_distance_km REAL NOT NULL DEFAULT 0;
			ALTER TABLE city_reports ADD COLUMN stddev_distance_km REAL NOT NULL DEFAULT 0;
		`,
	},
}

// InitMigrationsTable creates the migrations tracking table
func InitMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

// applyMigration applies a single migration inside a transaction
func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	log.Printf("Applied migration %d: %s", migration.Version, migration.Name)
	return nil
}

// runMigrations runs all pending migrations
func runMigrations(db *sql.DB) error {
	if err := InitMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := applyMigration(db, migration); err != nil {
			return err
		}
	}

	return nil
}
