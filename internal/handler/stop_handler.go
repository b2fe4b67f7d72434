package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/service"
	"github.com/jengzang/transit-network-go/pkg/response"
)

// StopHandler handles HTTP requests for unique stops
type StopHandler struct {
	service *service.NetworkService
}

// NewStopHandler creates a new stop handler
func NewStopHandler(service *service.NetworkService) *StopHandler {
	return &StopHandler{service: service}
}

// GetStops handles GET /api/v1/network/stops
func (h *StopHandler) GetStops(c *gin.Context) {
	var filter models.StopFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	mode := c.Query("mode")

	stops, total, err := h.service.ListStops(mode, &filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get stops", err)
		return
	}

	totalPages := total / filter.PageSize
	if total%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       stops,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}
