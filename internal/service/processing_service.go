package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/ingest"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/naming"
	"github.com/jengzang/transit-network-go/internal/network"
	"github.com/jengzang/transit-network-go/internal/report"
	"github.com/jengzang/transit-network-go/internal/repository"
)

// ProcessingService orchestrates pipeline runs: city discovery, per-city
// loading and network derivation, persistence, and report generation
type ProcessingService struct {
	runRepo     *repository.RunRepository
	segmentRepo *repository.SegmentRepository
	stopRepo    *repository.StopRepository
	reportRepo  *repository.ReportRepository
	writer      *report.Writer

	dataPath string
	workers  int
}

// NewProcessingService creates a new processing service
func NewProcessingService(
	runRepo *repository.RunRepository,
	segmentRepo *repository.SegmentRepository,
	stopRepo *repository.StopRepository,
	reportRepo *repository.ReportRepository,
	writer *report.Writer,
	cfg *config.Config,
) *ProcessingService {
	return &ProcessingService{
		runRepo:     runRepo,
		segmentRepo: segmentRepo,
		stopRepo:    stopRepo,
		reportRepo:  reportRepo,
		writer:      writer,
		dataPath:    cfg.DataPath,
		workers:     cfg.Workers,
	}
}

// StartRun creates a run record and launches the pipeline asynchronously
func (s *ProcessingService) StartRun(mode config.Mode, createdBy string) (*models.ProcessingRun, error) {
	run := &models.ProcessingRun{
		RunID:     uuid.New().String(),
		Mode:      mode.Name,
		Status:    models.RunStatusPending,
		CreatedBy: createdBy,
	}

	if err := s.runRepo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	go func() {
		if err := s.executeRun(run.RunID, mode); err != nil {
			log.Printf("Run %s failed: %v", run.RunID, err)
			s.runRepo.MarkAsFailed(run.RunID, err.Error())
		}
	}()

	return run, nil
}

// RunSync creates a run record and executes the pipeline in the calling
// goroutine. Used by the batch command.
func (s *ProcessingService) RunSync(mode config.Mode, createdBy string) (*models.ProcessingRun, error) {
	run := &models.ProcessingRun{
		RunID:     uuid.New().String(),
		Mode:      mode.Name,
		Status:    models.RunStatusPending,
		CreatedBy: createdBy,
	}

	if err := s.runRepo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := s.executeRun(run.RunID, mode); err != nil {
		s.runRepo.MarkAsFailed(run.RunID, err.Error())
		return nil, err
	}

	return s.runRepo.GetByRunID(run.RunID)
}

// cityJob is one city's work unit
type cityJob struct {
	dir    string
	cityEN string
}

// cityOutcome carries one city's tally back to the coordinator
type cityOutcome struct {
	result models.CityResult
	routes int
	stops  int
}

// executeRun runs the full pipeline for one mode. Cities are independent:
// each is loaded, derived, and persisted in isolation so one city's failure
// never aborts the run.
func (s *ProcessingService) executeRun(runID string, mode config.Mode) error {
	startTime := time.Now()
	log.Printf("Starting %s pipeline run %s", mode.Name, runID)

	jobs, err := s.discoverCities()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no city directories found under %s", s.dataPath)
	}

	if err := s.runRepo.MarkAsRunning(runID, len(jobs)); err != nil {
		return err
	}

	policy := network.KeyDirectional
	if mode.AggregationKey == "undirected" {
		policy = network.KeyUndirected
	}

	var (
		mu       sync.Mutex
		stats    models.GlobalStats
		results  []models.CityResult
		finished int
		failed   int
	)
	stats.TotalCities = len(jobs)

	workers := s.workers
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan cityJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outcome := s.processCity(runID, mode, policy, job)

				mu.Lock()
				results = append(results, outcome.result)
				finished++
				if outcome.result.Success {
					stats.ProcessedCities++
				} else {
					stats.FailedCities++
					failed++
				}
				stats.TotalRoutes += outcome.routes
				stats.TotalStops += outcome.stops
				stats.TotalSegments += outcome.result.SegmentsGenerated
				stats.TotalUniqueSegments += outcome.result.UniqueSegments
				stats.TotalUniqueStops += outcome.result.UniqueStops
				done, bad := finished, failed
				mu.Unlock()

				if err := s.runRepo.UpdateProgress(runID, done, bad); err != nil {
					log.Printf("Failed to update progress for run %s: %v", runID, err)
				}
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	// All cities finish before the summary is assembled
	summary := &models.SummaryReport{
		ProcessingInfo: models.ProcessingInfo{
			Title:            fmt.Sprintf("%s network segment analysis", mode.Name),
			Description:      "Per-city stop-to-stop segment derivation and aggregation",
			Mode:             mode.Name,
			CoordinateSystem: "wgs84",
			ProcessingTime:   startTime,
			InputPath:        s.dataPath,
		},
		GlobalStatistics: stats,
		CityResults:      results,
	}

	if _, err := s.writer.WriteSummary(summary); err != nil {
		log.Printf("Failed to write summary report for run %s: %v", runID, err)
	}

	summaryJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := s.runRepo.MarkAsCompleted(runID, string(summaryJSON)); err != nil {
		return err
	}

	log.Printf("Run %s completed in %s: %d/%d cities ok, %d unique segments",
		runID, time.Since(startTime).Round(time.Second),
		stats.ProcessedCities, stats.TotalCities, stats.TotalUniqueSegments)
	return nil
}

// processCity loads, derives, and persists one city. Every failure path
// produces a CityResult with a reason instead of propagating an error.
func (s *ProcessingService) processCity(runID string, mode config.Mode, policy network.KeyPolicy, job cityJob) cityOutcome {
	outcome := cityOutcome{
		result: models.CityResult{
			CityEN:     job.cityEN,
			CityPinyin: naming.CityNameToPinyin(job.cityEN),
		},
	}

	loader := ingest.NewLoader(mode)
	routes, occurrences, loadStats, err := loader.LoadCity(job.dir, job.cityEN)
	if err != nil {
		log.Printf("Failed to load city %s: %v", job.cityEN, err)
		outcome.result.Reason = fmt.Sprintf("load failed: %v", err)
		s.recordCity(runID, mode.Name, &outcome.result)
		return outcome
	}
	outcome.routes = len(routes)
	outcome.stops = len(occurrences)

	output := network.ProcessCity(job.cityEN, routes, occurrences, policy)
	output.Result.CityPinyin = outcome.result.CityPinyin
	output.Result.StopsSkipped = loadStats.StopsSkipped + loadStats.InvalidCoordinates
	outcome.result = output.Result

	if output.Result.Success {
		if err := s.segmentRepo.ReplaceCity(mode.Name, job.cityEN, output.Segments); err != nil {
			log.Printf("Failed to persist segments for %s: %v", job.cityEN, err)
			outcome.result.Success = false
			outcome.result.Reason = fmt.Sprintf("persist failed: %v", err)
		} else if err := s.stopRepo.ReplaceCity(mode.Name, job.cityEN, output.Stops); err != nil {
			log.Printf("Failed to persist stops for %s: %v", job.cityEN, err)
			outcome.result.Success = false
			outcome.result.Reason = fmt.Sprintf("persist failed: %v", err)
		}
	}

	s.recordCity(runID, mode.Name, &outcome.result)
	return outcome
}

// recordCity stores the city tally and writes its info file
func (s *ProcessingService) recordCity(runID string, modeName string, result *models.CityResult) {
	if err := s.reportRepo.SaveCityResult(runID, modeName, result); err != nil {
		log.Printf("Failed to save city result for %s: %v", result.CityEN, err)
	}
	if err := s.writer.WriteCityInfo(modeName, result); err != nil {
		log.Printf("Failed to write city info for %s: %v", result.CityEN, err)
	}
}

// discoverCities lists the per-city subdirectories of the data root.
// The directory name is the city's English identifier.
func (s *ProcessingService) discoverCities() ([]cityJob, error) {
	entries, err := os.ReadDir(s.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var jobs []cityJob
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		jobs = append(jobs, cityJob{
			dir:    filepath.Join(s.dataPath, entry.Name()),
			cityEN: entry.Name(),
		})
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].cityEN < jobs[j].cityEN })
	return jobs, nil
}

// GetRun returns one run by its external id
func (s *ProcessingService) GetRun(runID string) (*models.ProcessingRun, error) {
	return s.runRepo.GetByRunID(runID)
}

// ListRuns returns runs with optional mode and status filters
func (s *ProcessingService) ListRuns(mode string, status string, limit int, offset int) ([]*models.ProcessingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.runRepo.List(mode, status, limit, offset)
}

// CityResults returns the per-city tallies of one run
func (s *ProcessingService) CityResults(runID string) ([]*models.CityResult, error) {
	return s.reportRepo.ListByRun(runID)
}
