package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/transit-network-go/internal/models"
)

// RunRepository handles database operations for processing runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create creates a new processing run
func (r *RunRepository) Create(run *models.ProcessingRun) error {
	query := `
		INSERT INTO processing_runs (
			run_id, mode, status, total_cities, processed_cities, failed_cities,
			result_summary, error_message, start_time, end_time, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		run.RunID,
		run.Mode,
		run.Status,
		run.TotalCities,
		run.ProcessedCities,
		run.FailedCities,
		run.ResultSummary,
		run.ErrorMessage,
		run.StartTime,
		run.EndTime,
		run.CreatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to create processing run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// GetByRunID retrieves a processing run by its external run id
func (r *RunRepository) GetByRunID(runID string) (*models.ProcessingRun, error) {
	query := `
		SELECT id, run_id, mode, status, total_cities, processed_cities,
			   failed_cities, result_summary, error_message, start_time,
			   end_time, created_by, created_at, updated_at
		FROM processing_runs
		WHERE run_id = ?
	`

	run := &models.ProcessingRun{}
	var resultSummary, errorMessage, createdBy sql.NullString
	var startTime, endTime sql.NullInt64
	err := r.db.QueryRow(query, runID).Scan(
		&run.ID,
		&run.RunID,
		&run.Mode,
		&run.Status,
		&run.TotalCities,
		&run.ProcessedCities,
		&run.FailedCities,
		&resultSummary,
		&errorMessage,
		&startTime,
		&endTime,
		&createdBy,
		&run.CreatedAt,
		&run.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("processing run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get processing run: %w", err)
	}

	run.ResultSummary = resultSummary.String
	run.ErrorMessage = errorMessage.String
	run.CreatedBy = createdBy.String
	run.StartTime = startTime.Int64
	run.EndTime = endTime.Int64
	return run, nil
}

// List retrieves processing runs with optional filters, newest first
func (r *RunRepository) List(mode string, status string, limit int, offset int) ([]*models.ProcessingRun, error) {
	query := `
		SELECT id, run_id, mode, status, total_cities, processed_cities,
			   failed_cities, result_summary, error_message, start_time,
			   end_time, created_by, created_at, updated_at
		FROM processing_runs
		WHERE 1=1
	`

	args := []interface{}{}
	if mode != "" {
		query += " AND mode = ?"
		args = append(args, mode)
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processing runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ProcessingRun
	for rows.Next() {
		run := &models.ProcessingRun{}
		var resultSummary, errorMessage, createdBy sql.NullString
		var startTime, endTime sql.NullInt64
		err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.Mode,
			&run.Status,
			&run.TotalCities,
			&run.ProcessedCities,
			&run.FailedCities,
			&resultSummary,
			&errorMessage,
			&startTime,
			&endTime,
			&createdBy,
			&run.CreatedAt,
			&run.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan processing run: %w", err)
		}
		run.ResultSummary = resultSummary.String
		run.ErrorMessage = errorMessage.String
		run.CreatedBy = createdBy.String
		run.StartTime = startTime.Int64
		run.EndTime = endTime.Int64
		runs = append(runs, run)
	}

	return runs, nil
}

// UpdateProgress updates the per-city progress counters of a run
func (r *RunRepository) UpdateProgress(runID string, processedCities int, failedCities int) error {
	query := `
		UPDATE processing_runs
		SET processed_cities = ?, failed_cities = ?, updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`

	_, err := r.db.Exec(query, processedCities, failedCities, runID)
	if err != nil {
		return fmt.Errorf("failed to update run progress: %w", err)
	}

	return nil
}

// MarkAsRunning marks a run as running
func (r *RunRepository) MarkAsRunning(runID string, totalCities int) error {
	now := time.Now().Unix()
	query := `
		UPDATE processing_runs
		SET status = ?, total_cities = ?, start_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`

	_, err := r.db.Exec(query, models.RunStatusRunning, totalCities, now, runID)
	if err != nil {
		return fmt.Errorf("failed to mark run as running: %w", err)
	}

	return nil
}

// MarkAsCompleted marks a run as completed with a result summary
func (r *RunRepository) MarkAsCompleted(runID string, resultSummary string) error {
	now := time.Now().Unix()
	query := `
		UPDATE processing_runs
		SET status = ?, end_time = ?, result_summary = ?, updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`

	_, err := r.db.Exec(query, models.RunStatusCompleted, now, resultSummary, runID)
	if err != nil {
		return fmt.Errorf("failed to mark run as completed: %w", err)
	}

	return nil
}

// MarkAsFailed marks a run as failed with an error message
func (r *RunRepository) MarkAsFailed(runID string, errorMessage string) error {
	now := time.Now().Unix()
	query := `
		UPDATE processing_runs
		SET status = ?, end_time = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`

	_, err := r.db.Exec(query, models.RunStatusFailed, now, errorMessage, runID)
	if err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}

	return nil
}
