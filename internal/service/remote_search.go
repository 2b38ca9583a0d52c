package service

import (
	"fmt"

	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
)

// Remote query variants. The covering and every distance computation run
// on the remote service; this process only validates arguments, scans the
// index and sorts. Candidate lookup uses cell equality instead of leaf
// ranges: the remote covering is already promoted to the index levels, and
// every POI carries a token at each of those levels, so a candidate inside
// a covering cell holds a token exactly equal to it.

// RadiusSearchRemote is RadiusSearch with covering and distances delegated
// to the remote service. All candidate distances go out in one batched
// call.
func (s *SearchService) RadiusSearchRemote(centerLat, centerLng, radiusMeters float64) ([]models.POIResult, error) {
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	// Validation errors stay local and immediate.
	if err := s2geo.ValidateCoordinate(centerLat, centerLng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", s2geo.ErrInvalidRegion, radiusMeters)
	}

	cells, err := s.remote.Covering(centerLat, centerLng, radiusMeters)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []models.POIResult{}, nil
	}

	candidates, err := s.poiRepo.ScanCells(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to scan location index: %w", err)
	}
	if len(candidates) == 0 {
		return []models.POIResult{}, nil
	}

	calls := make([][]float64, 0, len(candidates))
	for _, poi := range candidates {
		calls = append(calls, []float64{poi.Latitude, poi.Longitude, centerLat, centerLng})
	}
	distances, err := s.remote.Distances(calls)
	if err != nil {
		return nil, err
	}

	results := make([]models.POIResult, 0, len(candidates))
	for i, poi := range candidates {
		if distances[i] <= radiusMeters {
			results = append(results, models.POIResult{POI: poi, DistanceMeters: distances[i]})
		}
	}
	sortByDistance(results)
	return results, nil
}

// BBoxSearchRemote is BBoxSearch with the covering delegated to the remote
// service; the exact bounds post-filter stays in SQL.
func (s *SearchService) BBoxSearchRemote(minLat, minLng, maxLat, maxLng float64) ([]models.POI, error) {
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	if err := s2geo.ValidateCoordinate(minLat, minLng); err != nil {
		return nil, err
	}
	if err := s2geo.ValidateCoordinate(maxLat, maxLng); err != nil {
		return nil, err
	}
	if minLat > maxLat || minLng > maxLng {
		return nil, fmt.Errorf("%w: min corner (%v, %v) exceeds max corner (%v, %v)",
			s2geo.ErrInvalidRegion, minLat, minLng, maxLat, maxLng)
	}

	cells, err := s.remote.CoveringRect(minLat, minLng, maxLat, maxLng)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []models.POI{}, nil
	}

	pois, err := s.poiRepo.ScanCellsInBounds(cells, minLat, minLng, maxLat, maxLng)
	if err != nil {
		return nil, fmt.Errorf("failed to scan location index: %w", err)
	}
	if pois == nil {
		pois = []models.POI{}
	}
	return pois, nil
}

// KNNSearchRemote runs the same radius-doubling loop as KNNSearch over the
// remote radius search.
func (s *SearchService) KNNSearchRemote(centerLat, centerLng float64, k int, initialRadiusMeters float64) ([]models.POIResult, error) {
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	return s.knnLoop(centerLat, centerLng, k, initialRadiusMeters, DefaultKNNConfig(), s.RadiusSearchRemote)
}

func (s *SearchService) requireRemote() error {
	if s.remote == nil {
		return fmt.Errorf("%w: no endpoint configured", remote.ErrUnavailable)
	}
	return nil
}
