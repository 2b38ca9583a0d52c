package service

import (
	"fmt"
	"sort"

	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/repository"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
)

// KNNConfig controls the iterative expansion of a k-NN search. Both knobs
// are explicit so tests can force early termination.
type KNNConfig struct {
	MaxAttempts  int
	GrowthFactor float64
}

// DefaultKNNConfig returns the standard expansion policy: up to 8
// attempts, doubling the radius each time.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		MaxAttempts:  8,
		GrowthFactor: 2,
	}
}

// SearchService orchestrates covering computation, index scans and exact
// post-filtering for the three query shapes. The remote client is
// optional; when present, the Remote variants delegate covering and
// distance computation to the remote service so this process needs no
// geometry work of its own on that path.
type SearchService struct {
	poiRepo *repository.POIRepository
	remote  *remote.Client
}

// NewSearchService creates a new search service. remoteClient may be nil
// when the remote path is not deployed.
func NewSearchService(poiRepo *repository.POIRepository, remoteClient *remote.Client) *SearchService {
	return &SearchService{
		poiRepo: poiRepo,
		remote:  remoteClient,
	}
}

// RadiusSearch finds every POI within radiusMeters of the center, sorted
// ascending by distance. The covering scan over-approximates; the exact
// distance check removes the false positives.
func (s *SearchService) RadiusSearch(centerLat, centerLng, radiusMeters float64) ([]models.POIResult, error) {
	cells, err := s2geo.CoverCircle(centerLat, centerLng, radiusMeters, s2geo.DefaultMaxCells)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		// Degenerate covering: valid empty result, not an error.
		return []models.POIResult{}, nil
	}

	candidates, err := s.poiRepo.ScanRanges(s2geo.ToRanges(cells))
	if err != nil {
		return nil, fmt.Errorf("failed to scan location index: %w", err)
	}

	results := filterByDistance(candidates, centerLat, centerLng, radiusMeters, s2geo.DistanceMeters)
	sortByDistance(results)
	return results, nil
}

// BBoxSearch finds every POI inside the rectangle, sorted by name. The
// exact bounds check is the post-filter; no distance is computed.
func (s *SearchService) BBoxSearch(minLat, minLng, maxLat, maxLng float64) ([]models.POI, error) {
	cells, err := s2geo.CoverRect(minLat, minLng, maxLat, maxLng, s2geo.DefaultMaxCells)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []models.POI{}, nil
	}

	pois, err := s.poiRepo.ScanRangesInBounds(s2geo.ToRanges(cells), minLat, minLng, maxLat, maxLng)
	if err != nil {
		return nil, fmt.Errorf("failed to scan location index: %w", err)
	}
	if pois == nil {
		pois = []models.POI{}
	}
	return pois, nil
}

// KNNSearch finds up to k nearest POIs with the default expansion policy.
func (s *SearchService) KNNSearch(centerLat, centerLng float64, k int, initialRadiusMeters float64) ([]models.POIResult, error) {
	return s.KNNSearchWithConfig(centerLat, centerLng, k, initialRadiusMeters, DefaultKNNConfig())
}

// KNNSearchWithConfig runs the iterative radius-doubling k-NN search:
// query at the current radius, and while fewer than k POIs come back, grow
// the radius and retry, up to cfg.MaxAttempts. The result is approximate
// by design — if fewer than k POIs exist within the final radius, fewer
// than k results come back and that is not an error.
func (s *SearchService) KNNSearchWithConfig(centerLat, centerLng float64, k int, initialRadiusMeters float64, cfg KNNConfig) ([]models.POIResult, error) {
	return s.knnLoop(centerLat, centerLng, k, initialRadiusMeters, cfg, s.RadiusSearch)
}

func (s *SearchService) knnLoop(centerLat, centerLng float64, k int, initialRadiusMeters float64, cfg KNNConfig,
	radiusSearch func(float64, float64, float64) ([]models.POIResult, error)) ([]models.POIResult, error) {

	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", s2geo.ErrInvalidRegion, k)
	}
	if cfg.MaxAttempts <= 0 || cfg.GrowthFactor <= 1 {
		return nil, fmt.Errorf("invalid knn config: attempts %d, growth %v", cfg.MaxAttempts, cfg.GrowthFactor)
	}

	radius := initialRadiusMeters
	var results []models.POIResult
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		var err error
		results, err = radiusSearch(centerLat, centerLng, radius)
		if err != nil {
			return nil, err
		}
		if len(results) >= k {
			break
		}
		radius *= cfg.GrowthFactor
	}

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func filterByDistance(candidates []models.POI, centerLat, centerLng, radiusMeters float64,
	distance func(float64, float64, float64, float64) float64) []models.POIResult {

	results := make([]models.POIResult, 0, len(candidates))
	for _, poi := range candidates {
		d := distance(centerLat, centerLng, poi.Latitude, poi.Longitude)
		if d <= radiusMeters {
			results = append(results, models.POIResult{POI: poi, DistanceMeters: d})
		}
	}
	return results
}

func sortByDistance(results []models.POIResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
}
