package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/handler"
	"github.com/jengzang/transit-network-go/internal/middleware"
)

// Handlers bundles the HTTP handlers wired by the router
type Handlers struct {
	Auth    *handler.AuthHandler
	Segment *handler.SegmentHandler
	Stop    *handler.StopHandler
	Run     *handler.RunHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Transit Network API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(300, time.Minute))
	{
		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// 线网查询接口
		network := api.Group("/network")
		{
			network.GET("/segments", h.Segment.GetSegments)
			network.GET("/stops", h.Stop.GetStops)
			network.GET("/cities", h.Segment.GetCityStats)
		}

		// 管线任务接口（写操作需要认证）
		runs := api.Group("/runs")
		{
			runs.GET("", h.Run.ListRuns)
			runs.GET("/:id", h.Run.GetRun)
			runs.GET("/:id/cities", h.Run.GetRunCities)
			runs.POST("", middleware.JWTAuth(cfg.JWTSecret), h.Run.CreateRun)
		}
	}

	return r
}
