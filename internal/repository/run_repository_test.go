package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/transit-network-go/internal/database"
	"github.com/jengzang/transit-network-go/internal/models"
)

// testDB initializes the shared database once, against a throwaway file.
// Init is a singleton so the first caller's path wins for the test binary.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.Init(database.Config{Path: path}))
	return database.GetDB()
}

func TestRunRepositoryLifecycle(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	run := &models.ProcessingRun{
		RunID:     uuid.New().String(),
		Mode:      "bus",
		Status:    models.RunStatusPending,
		CreatedBy: "tester",
	}
	require.NoError(t, repo.Create(run))
	assert.Greater(t, run.ID, int64(0))

	require.NoError(t, repo.MarkAsRunning(run.RunID, 7))
	require.NoError(t, repo.UpdateProgress(run.RunID, 3, 1))

	got, err := repo.GetByRunID(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusRunning, got.Status)
	assert.Equal(t, 7, got.TotalCities)
	assert.Equal(t, 3, got.ProcessedCities)
	assert.Equal(t, 1, got.FailedCities)
	assert.Equal(t, "tester", got.CreatedBy)
	assert.NotZero(t, got.StartTime)

	require.NoError(t, repo.MarkAsCompleted(run.RunID, `{"total_routes":42}`))
	got, err = repo.GetByRunID(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, `{"total_routes":42}`, got.ResultSummary)
	assert.NotZero(t, got.EndTime)
}

func TestRunRepositoryGetUnknownRunID(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	_, err := repo.GetByRunID("no-such-run")
	assert.ErrorContains(t, err, "processing run not found")
}

func TestRunRepositoryListFiltersByStatus(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	failedRun := &models.ProcessingRun{
		RunID:  uuid.New().String(),
		Mode:   "metro",
		Status: models.RunStatusPending,
	}
	require.NoError(t, repo.Create(failedRun))
	require.NoError(t, repo.MarkAsFailed(failedRun.RunID, "no cities found"))

	runs, err := repo.List("metro", models.RunStatusFailed, 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, runs)
	for _, run := range runs {
		assert.Equal(t, "metro", run.Mode)
		assert.Equal(t, models.RunStatusFailed, run.Status)
	}
}
