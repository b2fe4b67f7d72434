package models

import "time"

// ProcessingRun represents one pipeline execution tracked as an async task
type ProcessingRun struct {
	ID int64 `json:"id" db:"id"`

	// RunID is the externally visible identifier
	RunID string `json:"run_id" db:"run_id"`
	Mode  string `json:"mode" db:"mode"` // bus, metro

	// Status
	Status          string `json:"status" db:"status"` // pending, running, completed, failed
	TotalCities     int    `json:"total_cities" db:"total_cities"`
	ProcessedCities int    `json:"processed_cities" db:"processed_cities"`
	FailedCities    int    `json:"failed_cities" db:"failed_cities"`

	// Results
	ResultSummary string `json:"result_summary,omitempty" db:"result_summary"` // JSON GlobalStats
	ErrorMessage  string `json:"error_message,omitempty" db:"error_message"`

	// Execution info
	StartTime int64 `json:"start_time,omitempty" db:"start_time"` // Unix timestamp
	EndTime   int64 `json:"end_time,omitempty" db:"end_time"`     // Unix timestamp

	// Metadata
	CreatedBy string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RunStatus constants
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
