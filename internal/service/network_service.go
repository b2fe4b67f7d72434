package service

import (
	"fmt"

	"github.com/jengzang/transit-network-go/internal/models"
	"github.com/jengzang/transit-network-go/internal/repository"
)

// NetworkService handles queries over the derived network
type NetworkService struct {
	segmentRepo *repository.SegmentRepository
	stopRepo    *repository.StopRepository
}

// NewNetworkService creates a new network service
func NewNetworkService(segmentRepo *repository.SegmentRepository, stopRepo *repository.StopRepository) *NetworkService {
	return &NetworkService{
		segmentRepo: segmentRepo,
		stopRepo:    stopRepo,
	}
}

// normalizeMode fills in the default pipeline mode
func normalizeMode(mode string) string {
	if mode == "" {
		return "bus"
	}
	return mode
}

// ListSegments returns aggregated segments matching the filter plus the
// total match count for pagination
func (s *NetworkService) ListSegments(mode string, filter *models.SegmentFilter) ([]*models.AggregatedSegment, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 1000 {
		filter.PageSize = 100
	}
	if filter.MinDistance < 0 || filter.MaxDistance < 0 {
		return nil, 0, fmt.Errorf("distance bounds must be non-negative")
	}
	if filter.MaxDistance > 0 && filter.MinDistance > filter.MaxDistance {
		return nil, 0, fmt.Errorf("minDistance exceeds maxDistance")
	}

	return s.segmentRepo.List(normalizeMode(mode), filter)
}

// ListStops returns unique stops matching the filter plus the total count
func (s *NetworkService) ListStops(mode string, filter *models.StopFilter) ([]*models.UniqueStop, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 1000 {
		filter.PageSize = 100
	}

	return s.stopRepo.List(normalizeMode(mode), filter)
}

// CityNetworkStats summarizes one city's persisted network
type CityNetworkStats struct {
	CityEN   string `json:"city_en"`
	Segments int    `json:"segments"`
	Stops    int    `json:"stops"`
}

// CityStats returns per-city segment and stop counts for a mode
func (s *NetworkService) CityStats(mode string) ([]CityNetworkStats, error) {
	mode = normalizeMode(mode)

	cities, err := s.segmentRepo.Cities(mode)
	if err != nil {
		return nil, err
	}
	segmentCounts, err := s.segmentRepo.CountByCity(mode)
	if err != nil {
		return nil, err
	}
	stopCounts, err := s.stopRepo.CountByCity(mode)
	if err != nil {
		return nil, err
	}

	stats := make([]CityNetworkStats, 0, len(cities))
	for _, city := range cities {
		stats = append(stats, CityNetworkStats{
			CityEN:   city,
			Segments: segmentCounts[city],
			Stops:    stopCounts[city],
		})
	}

	return stats, nil
}
