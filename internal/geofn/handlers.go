package geofn

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang/geo/s2"

	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
)

// Config bounds the batch sizes the service accepts. Covering calls are
// CPU-heavier than distance calls, so they get the smaller budget. Both
// are deployment knobs, not protocol constants.
type Config struct {
	MaxCoveringCalls int
	MaxDistanceCalls int
}

// DefaultConfig returns the default batch limits.
func DefaultConfig() Config {
	return Config{
		MaxCoveringCalls: 25,
		MaxDistanceCalls: 200,
	}
}

// Handler serves the covering/distance batch functions. Stateless: every
// call is a pure computation over its arguments.
type Handler struct {
	cfg Config
}

// NewHandler creates a handler with the given batch limits.
func NewHandler(cfg Config) *Handler {
	if cfg.MaxCoveringCalls <= 0 {
		cfg.MaxCoveringCalls = DefaultConfig().MaxCoveringCalls
	}
	if cfg.MaxDistanceCalls <= 0 {
		cfg.MaxDistanceCalls = DefaultConfig().MaxDistanceCalls
	}
	return &Handler{cfg: cfg}
}

// Covering handles POST /covering: calls of (centerLat, centerLng,
// radiusMeters), each reply an array of string-encoded cell IDs.
func (h *Handler) Covering(c *gin.Context) {
	req, ok := bindBatch(c, h.cfg.MaxCoveringCalls)
	if !ok {
		return
	}

	replies := make([]interface{}, 0, len(req.Calls))
	for _, args := range req.Calls {
		if len(args) != 3 {
			writeError(c, fmt.Sprintf("covering expects 3 arguments, got %d", len(args)))
			return
		}
		cells, err := s2geo.CoverCircle(args[0], args[1], args[2], s2geo.RemoteMaxCells)
		if err != nil {
			writeError(c, err.Error())
			return
		}
		replies = append(replies, encodeCellIDs(cells))
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// CoveringRect handles POST /covering_rect: calls of (minLat, minLng,
// maxLat, maxLng), each reply an array of string-encoded cell IDs.
func (h *Handler) CoveringRect(c *gin.Context) {
	req, ok := bindBatch(c, h.cfg.MaxCoveringCalls)
	if !ok {
		return
	}

	replies := make([]interface{}, 0, len(req.Calls))
	for _, args := range req.Calls {
		if len(args) != 4 {
			writeError(c, fmt.Sprintf("covering_rect expects 4 arguments, got %d", len(args)))
			return
		}
		cells, err := s2geo.CoverRect(args[0], args[1], args[2], args[3], s2geo.RemoteMaxCells)
		if err != nil {
			writeError(c, err.Error())
			return
		}
		replies = append(replies, encodeCellIDs(cells))
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// Distance handles POST /distance: calls of (lat1, lng1, lat2, lng2), each
// reply the great-circle distance in meters as a plain JSON number.
func (h *Handler) Distance(c *gin.Context) {
	req, ok := bindBatch(c, h.cfg.MaxDistanceCalls)
	if !ok {
		return
	}

	replies := make([]interface{}, 0, len(req.Calls))
	for _, args := range req.Calls {
		if len(args) != 4 {
			writeError(c, fmt.Sprintf("distance expects 4 arguments, got %d", len(args)))
			return
		}
		if err := s2geo.ValidateCoordinate(args[0], args[1]); err != nil {
			writeError(c, err.Error())
			return
		}
		if err := s2geo.ValidateCoordinate(args[2], args[3]); err != nil {
			writeError(c, err.Error())
			return
		}
		replies = append(replies, s2geo.DistanceMeters(args[0], args[1], args[2], args[3]))
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

func bindBatch(c *gin.Context, maxCalls int) (remote.BatchRequest, bool) {
	var req remote.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "invalid batch request: "+err.Error())
		return req, false
	}
	if len(req.Calls) == 0 {
		writeError(c, "batch request has no calls")
		return req, false
	}
	if len(req.Calls) > maxCalls {
		writeError(c, fmt.Sprintf("batch of %d calls exceeds limit %d", len(req.Calls), maxCalls))
		return req, false
	}
	return req, true
}

func encodeCellIDs(cells []s2.CellID) []string {
	tokens := make([]string, 0, len(cells))
	for _, cell := range cells {
		tokens = append(tokens, strconv.FormatInt(s2geo.StoredCellID(cell), 10))
	}
	return tokens
}

// writeError reports a failure in the batch protocol's error shape. The
// protocol carries errors in the body, not in the HTTP status.
func writeError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"errorMessage": message})
}
