package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  string
	DataPath   string // 原始采集数据根目录
	OutputPath string // 报告输出目录
	ModesPath  string // 管线模式配置文件
	Workers    int    // 城市并发数（1 = 顺序处理）
	AdminUser  string
	AdminPass  string
}

// Load 加载配置
func Load() *Config {
	// .env 文件可选
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/transit/network.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data/raw"
	}

	outputPath := os.Getenv("OUTPUT_PATH")
	if outputPath == "" {
		outputPath = "./data/reports"
	}

	modesPath := os.Getenv("MODES_PATH")
	if modesPath == "" {
		modesPath = "./modes.yml"
	}

	workers := 1
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}

	adminPass := os.Getenv("ADMIN_PASS")
	if adminPass == "" {
		adminPass = "admin"
	}

	return &Config{
		Port:       port,
		DBPath:     dbPath,
		JWTSecret:  jwtSecret,
		DataPath:   dataPath,
		OutputPath: outputPath,
		ModesPath:  modesPath,
		Workers:    workers,
		AdminUser:  adminUser,
		AdminPass:  adminPass,
	}
}
