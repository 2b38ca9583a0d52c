package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geopoi/poi-backend-go/internal/config"
	"github.com/geopoi/poi-backend-go/internal/handler"
	"github.com/geopoi/poi-backend-go/internal/middleware"
)

// SetupRouter wires the POI API routes
func SetupRouter(cfg *config.Config, poiHandler *handler.POIHandler, searchHandler *handler.SearchHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "POI search API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		// Ingestion and lookup
		pois := api.Group("/pois")
		{
			pois.GET("/:id", poiHandler.GetByID)

			authed := pois.Group("", middleware.Auth(cfg.JWTSecret))
			{
				authed.POST("", poiHandler.Upsert)
				authed.POST("/batch", poiHandler.UpsertBatch)
				authed.DELETE("/:id", poiHandler.Delete)
			}
		}

		// Spatial queries
		search := api.Group("/search", middleware.RateLimit(120, time.Minute))
		{
			search.GET("/radius", searchHandler.Radius)
			search.GET("/bbox", searchHandler.BBox)
			search.GET("/knn", searchHandler.KNN)
		}
	}

	return r
}
