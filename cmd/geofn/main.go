package main

import (
	"log"

	"github.com/geopoi/poi-backend-go/internal/config"
	"github.com/geopoi/poi-backend-go/internal/geofn"
)

func main() {
	cfg := config.Load()

	router := geofn.SetupRouter(geofn.DefaultConfig())

	log.Printf("Geo function service starting on port %s", cfg.GeoFnPort)
	if err := router.Run(cfg.GeoFnPort); err != nil {
		log.Fatal("Failed to start geo function service:", err)
	}
}
