package main

import (
	"log"

	"github.com/geopoi/poi-backend-go/internal/api"
	"github.com/geopoi/poi-backend-go/internal/config"
	"github.com/geopoi/poi-backend-go/internal/database"
	"github.com/geopoi/poi-backend-go/internal/handler"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/repository"
	"github.com/geopoi/poi-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Failed to create schema:", err)
	}

	var remoteClient *remote.Client
	if cfg.GeoFnURL != "" {
		remoteClient = remote.NewClient(cfg.GeoFnURL)
		log.Printf("Remote geo function service: %s", cfg.GeoFnURL)
	}

	poiRepo := repository.NewPOIRepository(db)
	poiService := service.NewPOIService(poiRepo)
	searchService := service.NewSearchService(poiRepo, remoteClient)

	router := api.SetupRouter(cfg,
		handler.NewPOIHandler(poiService),
		handler.NewSearchHandler(searchService))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
