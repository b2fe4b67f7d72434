package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/database"
	"github.com/jengzang/transit-network-go/internal/report"
	"github.com/jengzang/transit-network-go/internal/repository"
	"github.com/jengzang/transit-network-go/internal/service"
)

func main() {
	modeName := flag.String("mode", "bus", "pipeline mode to run (see modes.yml)")
	dataPath := flag.String("data", "", "override raw data directory")
	outputPath := flag.String("output", "", "override report output directory")
	workers := flag.Int("workers", 0, "override city concurrency")
	flag.Parse()

	cfg := config.Load()
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	modes, err := config.LoadModes(cfg.ModesPath)
	if err != nil {
		log.Fatal("Failed to load pipeline modes:", err)
	}

	mode, ok := config.FindMode(modes, *modeName)
	if !ok {
		log.Fatalf("Unknown pipeline mode: %s", *modeName)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	segmentRepo := repository.NewSegmentRepository(db)
	stopRepo := repository.NewStopRepository(db)
	runRepo := repository.NewRunRepository(db)
	reportRepo := repository.NewReportRepository(db)
	writer := report.NewWriter(cfg.OutputPath)

	processingService := service.NewProcessingService(runRepo, segmentRepo, stopRepo, reportRepo, writer, cfg)

	run, err := processingService.RunSync(mode, "cli")
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	summary, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		log.Fatalf("Failed to format run summary: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(summary))
}
