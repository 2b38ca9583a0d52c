package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
	"github.com/geopoi/poi-backend-go/internal/service"
	"github.com/geopoi/poi-backend-go/pkg/response"
)

// POIHandler handles HTTP requests for POI ingestion and lookup
type POIHandler struct {
	poiService *service.POIService
}

// NewPOIHandler creates a new POI handler
func NewPOIHandler(poiService *service.POIService) *POIHandler {
	return &POIHandler{
		poiService: poiService,
	}
}

// Upsert handles POST /api/v1/pois
func (h *POIHandler) Upsert(c *gin.Context) {
	var req models.UpsertPOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid POI payload: "+err.Error())
		return
	}

	poi, err := h.poiService.Upsert(req)
	if err != nil {
		if errors.Is(err, s2geo.ErrInvalidCoordinate) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, poi)
}

// UpsertBatch handles POST /api/v1/pois/batch
func (h *POIHandler) UpsertBatch(c *gin.Context) {
	var reqs []models.UpsertPOIRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, "Invalid POI batch payload: "+err.Error())
		return
	}
	if len(reqs) == 0 {
		response.BadRequest(c, "POI batch is empty")
		return
	}

	pois, err := h.poiService.UpsertBatch(reqs)
	if err != nil {
		if errors.Is(err, s2geo.ErrInvalidCoordinate) {
			response.BadRequest(c, err.Error())
			return
		}
		// The batch is all-or-nothing: on failure nothing was applied.
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"count": len(pois)})
}

// GetByID handles GET /api/v1/pois/:id
func (h *POIHandler) GetByID(c *gin.Context) {
	poi, err := h.poiService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "POI not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, poi)
}

// Delete handles DELETE /api/v1/pois/:id
func (h *POIHandler) Delete(c *gin.Context) {
	if err := h.poiService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "POI not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, nil)
}
