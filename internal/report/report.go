// Package report writes pipeline run summaries to the output directory:
// a machine-readable JSON report, a human-readable text digest, and a short
// per-city info file next to each city's results.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/naming"
)

// Writer persists run reports under a root output directory
type Writer struct {
	outputPath string
}

// NewWriter creates a report writer
func NewWriter(outputPath string) *Writer {
	return &Writer{outputPath: outputPath}
}

// WriteSummary writes the global JSON report and its text digest.
// Returns the path of the JSON file.
func (w *Writer) WriteSummary(summary *models.SummaryReport) (string, error) {
	dir := filepath.Join(w.outputPath, summary.ProcessingInfo.Mode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary report: %w", err)
	}

	jsonPath := filepath.Join(dir, "summary_report.json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary report: %w", err)
	}

	textPath := filepath.Join(dir, "summary_report.txt")
	if err := os.WriteFile(textPath, []byte(formatText(summary)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write text report: %w", err)
	}

	return jsonPath, nil
}

// WriteCityInfo writes a short info file for one city's run
func (w *Writer) WriteCityInfo(mode string, result *models.CityResult) error {
	folder := naming.SanitizeFolderName(result.CityPinyin)
	dir := filepath.Join(w.outputPath, mode, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create city directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\n", result.CityEN)
	fmt.Fprintf(&b, "Routes processed: %d\n", result.RoutesProcessed)
	fmt.Fprintf(&b, "Routes failed: %d\n", result.RoutesFailed)
	fmt.Fprintf(&b, "Segments generated: %d\n", result.SegmentsGenerated)
	fmt.Fprintf(&b, "Unique segments: %d\n", result.UniqueSegments)
	fmt.Fprintf(&b, "Unique stops: %d\n", result.UniqueStops)
	if result.UniqueSegments > 0 {
		fmt.Fprintf(&b, "Network length: %.3f km\n", result.TotalLengthKm)
		fmt.Fprintf(&b, "Segment distance km: min=%.3f median=%.3f max=%.3f stddev=%.3f\n",
			result.MinDistanceKm, result.MedianDistanceKm, result.MaxDistanceKm,
			result.StdDevDistanceKm)
	}
	fmt.Fprintf(&b, "Success: %v\n", result.Success)
	if result.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", result.Reason)
	}

	path := filepath.Join(dir, "info.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write city info: %w", err)
	}

	return nil
}

// formatText renders the human-readable digest
func formatText(summary *models.SummaryReport) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "%s\n", summary.ProcessingInfo.Title)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Mode: %s\n", summary.ProcessingInfo.Mode)
	fmt.Fprintf(&b, "Coordinate system: %s\n", summary.ProcessingInfo.CoordinateSystem)
	fmt.Fprintf(&b, "Input: %s\n", summary.ProcessingInfo.InputPath)
	fmt.Fprintf(&b, "Time: %s\n", summary.ProcessingInfo.ProcessingTime.Format("2006-01-02 15:04:05"))
	b.WriteString("\n")

	stats := summary.GlobalStatistics
	fmt.Fprintf(&b, "Cities: %d total, %d processed, %d failed\n",
		stats.TotalCities, stats.ProcessedCities, stats.FailedCities)
	fmt.Fprintf(&b, "Routes: %d\n", stats.TotalRoutes)
	fmt.Fprintf(&b, "Segments: %d generated, %d unique\n",
		stats.TotalSegments, stats.TotalUniqueSegments)
	fmt.Fprintf(&b, "Stops: %d occurrences, %d unique\n",
		stats.TotalStops, stats.TotalUniqueStops)
	b.WriteString("\n")

	results := make([]models.CityResult, len(summary.CityResults))
	copy(results, summary.CityResults)
	sort.Slice(results, func(i, j int) bool {
		return results[i].CityEN < results[j].CityEN
	})

	b.WriteString("Per-city results:\n")
	for _, result := range results {
		status := "ok"
		if !result.Success {
			status = "failed"
			if result.Reason != "" {
				status = "failed (" + result.Reason + ")"
			}
		}
		fmt.Fprintf(&b, "  %-24s routes=%-5d segments=%-6d stops=%-6d length=%-10.3f %s\n",
			result.CityEN, result.RoutesProcessed, result.UniqueSegments,
			result.UniqueStops, result.TotalLengthKm, status)
	}

	return b.String()
}
