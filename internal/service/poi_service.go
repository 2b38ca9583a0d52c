package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/repository"
)

// ErrNotFound indicates the requested POI does not exist.
var ErrNotFound = errors.New("poi not found")

// POIService handles business logic for POI ingestion and lookup.
type POIService struct {
	poiRepo *repository.POIRepository
}

// NewPOIService creates a new POI service
func NewPOIService(poiRepo *repository.POIRepository) *POIService {
	return &POIService{
		poiRepo: poiRepo,
	}
}

// Upsert creates or overwrites a POI with its location index entries.
func (s *POIService) Upsert(req models.UpsertPOIRequest) (models.POI, error) {
	poi, err := toPOI(req)
	if err != nil {
		return models.POI{}, err
	}
	if err := s.poiRepo.Upsert(poi); err != nil {
		return models.POI{}, err
	}
	return poi, nil
}

// UpsertBatch ingests multiple POIs as one atomic write.
func (s *POIService) UpsertBatch(reqs []models.UpsertPOIRequest) ([]models.POI, error) {
	pois := make([]models.POI, 0, len(reqs))
	for _, req := range reqs {
		poi, err := toPOI(req)
		if err != nil {
			return nil, err
		}
		pois = append(pois, poi)
	}
	if err := s.poiRepo.UpsertBatch(pois); err != nil {
		return nil, err
	}
	return pois, nil
}

// GetByID retrieves a single POI.
func (s *POIService) GetByID(id string) (*models.POI, error) {
	poi, err := s.poiRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}
	if poi == nil {
		return nil, ErrNotFound
	}
	return poi, nil
}

// Delete removes a POI together with its index entries.
func (s *POIService) Delete(id string) error {
	err := s.poiRepo.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func toPOI(req models.UpsertPOIRequest) (models.POI, error) {
	if req.ID == "" {
		return models.POI{}, fmt.Errorf("poi id is required")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return models.POI{}, fmt.Errorf("poi position is required")
	}
	return models.POI{
		ID:        req.ID,
		Name:      req.Name,
		Category:  req.Category,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}, nil
}
