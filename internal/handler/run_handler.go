package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/transit-network-go/internal/config"
	"github.com/jengzang/transit-network-go/internal/service"
	"github.com/jengzang/transit-network-go/pkg/response"
)

// RunHandler handles HTTP requests for processing runs
type RunHandler struct {
	service *service.ProcessingService
	modes   []config.Mode
}

// NewRunHandler creates a new run handler
func NewRunHandler(service *service.ProcessingService, modes []config.Mode) *RunHandler {
	return &RunHandler{service: service, modes: modes}
}

// createRunRequest is the body of POST /api/v1/runs
type createRunRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// CreateRun handles POST /api/v1/runs: starts a pipeline run asynchronously
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode, ok := config.FindMode(h.modes, req.Mode)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Unknown pipeline mode: "+req.Mode, nil)
		return
	}

	createdBy := c.GetString("username")

	run, err := h.service.StartRun(mode, createdBy)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to start run", err)
		return
	}

	response.Success(c, run)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	runID := c.Param("id")

	run, err := h.service.GetRun(runID)
	if err != nil {
		response.NotFound(c, "Run not found")
		return
	}

	response.Success(c, run)
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	mode := c.Query("mode")
	status := c.Query("status")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	runs, err := h.service.ListRuns(mode, status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	response.Success(c, gin.H{
		"data":  runs,
		"total": len(runs),
	})
}

// GetRunCities handles GET /api/v1/runs/:id/cities
func (h *RunHandler) GetRunCities(c *gin.Context) {
	runID := c.Param("id")

	results, err := h.service.CityResults(runID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get city results", err)
		return
	}

	response.Success(c, gin.H{
		"data":  results,
		"total": len(results),
	})
}
