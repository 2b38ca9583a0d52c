package geofn

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine for the remote covering/distance
// service.
func SetupRouter(cfg Config) *gin.Engine {
	r := gin.Default()
	h := NewHandler(cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Geo function service is running",
		})
	})

	r.POST("/covering", h.Covering)
	r.POST("/covering_rect", h.CoveringRect)
	r.POST("/distance", h.Distance)

	return r
}
