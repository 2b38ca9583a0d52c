package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
	"github.com/geopoi/poi-backend-go/internal/service"
	"github.com/geopoi/poi-backend-go/pkg/response"
)

// SearchHandler handles HTTP requests for spatial queries. Every endpoint
// accepts ?mode=remote to route covering/distance computation through the
// remote geo function service instead of the in-process geometry.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Radius handles GET /api/v1/search/radius
func (h *SearchHandler) Radius(c *gin.Context) {
	var q models.RadiusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var results []models.POIResult
	var err error
	if remoteMode(c) {
		results, err = h.searchService.RadiusSearchRemote(q.Lat, q.Lng, q.Radius)
	} else {
		results, err = h.searchService.RadiusSearch(q.Lat, q.Lng, q.Radius)
	}
	if err != nil {
		writeSearchError(c, err)
		return
	}

	response.Success(c, results)
}

// BBox handles GET /api/v1/search/bbox
func (h *SearchHandler) BBox(c *gin.Context) {
	var q models.BBoxQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var results []models.POI
	var err error
	if remoteMode(c) {
		results, err = h.searchService.BBoxSearchRemote(q.MinLat, q.MinLng, q.MaxLat, q.MaxLng)
	} else {
		results, err = h.searchService.BBoxSearch(q.MinLat, q.MinLng, q.MaxLat, q.MaxLng)
	}
	if err != nil {
		writeSearchError(c, err)
		return
	}

	response.Success(c, results)
}

// KNN handles GET /api/v1/search/knn
func (h *SearchHandler) KNN(c *gin.Context) {
	var q models.KNNQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if q.Radius <= 0 {
		q.Radius = 500
	}

	var results []models.POIResult
	var err error
	if remoteMode(c) {
		results, err = h.searchService.KNNSearchRemote(q.Lat, q.Lng, q.K, q.Radius)
	} else {
		results, err = h.searchService.KNNSearch(q.Lat, q.Lng, q.K, q.Radius)
	}
	if err != nil {
		writeSearchError(c, err)
		return
	}

	response.Success(c, results)
}

func remoteMode(c *gin.Context) bool {
	return c.Query("mode") == "remote"
}

func writeSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, s2geo.ErrInvalidCoordinate), errors.Is(err, s2geo.ErrInvalidRegion):
		response.BadRequest(c, err.Error())
	case errors.Is(err, remote.ErrUnavailable):
		// Distinct from store failure: the caller can fall back to the
		// client-side geometry path by dropping mode=remote.
		response.ServiceUnavailable(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
