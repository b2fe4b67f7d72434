package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/service"
	"github.com/jengzang/transit-network-go/pkg/response"
)

// SegmentHandler handles HTTP requests for aggregated segments
type SegmentHandler struct {
	service *service.NetworkService
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(service *service.NetworkService) *SegmentHandler {
	return &SegmentHandler{service: service}
}

// GetSegments handles GET /api/v1/network/segments
func (h *SegmentHandler) GetSegments(c *gin.Context) {
	var filter models.SegmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	mode := c.Query("mode")

	segments, total, err := h.service.ListSegments(mode, &filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get segments", err)
		return
	}

	totalPages := total / filter.PageSize
	if total%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       segments,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// GetCityStats handles GET /api/v1/network/cities
func (h *SegmentHandler) GetCityStats(c *gin.Context) {
	mode := c.Query("mode")

	stats, err := h.service.CityStats(mode)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get city statistics", err)
		return
	}

	response.Success(c, gin.H{
		"data":  stats,
		"total": len(stats),
	})
}
