package main

import (
	"log"

	"github.com/jengzang/transit-network-go/internal/api"
	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/database"
	"github.com/jengzang/transit-network-go/internal/handler"
	"github.com/jengzang/transit-network-go/internal/report"
	"github.com/jengzang/transit-network-go/internal/repository"
	"github.com/jengzang/transit-network-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	modes, err := config.LoadModes(cfg.ModesPath)
	if err != nil {
		log.Fatal("Failed to load pipeline modes:", err)
	}

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// 组装依赖
	segmentRepo := repository.NewSegmentRepository(db)
	stopRepo := repository.NewStopRepository(db)
	runRepo := repository.NewRunRepository(db)
	reportRepo := repository.NewReportRepository(db)
	writer := report.NewWriter(cfg.OutputPath)

	networkService := service.NewNetworkService(segmentRepo, stopRepo)
	processingService := service.NewProcessingService(runRepo, segmentRepo, stopRepo, reportRepo, writer, cfg)

	handlers := api.Handlers{
		Auth:    handler.NewAuthHandler(cfg),
		Segment: handler.NewSegmentHandler(networkService),
		Stop:    handler.NewStopHandler(networkService),
		Run:     handler.NewRunHandler(processingService, modes),
	}

	// 初始化路由
	router := api.SetupRouter(cfg, handlers)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
