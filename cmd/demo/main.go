// End-to-end demo: seeds the San Francisco sample POIs, then runs the
// three spatial queries in two modes — client-side geometry, and (when
// GEOFN_URL is set) the remote covering/distance service — with identical
// parameters so the two result sets can be compared side by side.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/cenkalti/backoff/v4"

	"github.com/geopoi/poi-backend-go/internal/config"
	"github.com/geopoi/poi-backend-go/internal/database"
	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/repository"
	"github.com/geopoi/poi-backend-go/internal/seed"
	"github.com/geopoi/poi-backend-go/internal/service"
)

// Shared search parameters, near Union Square.
const (
	searchLat    = 37.7880
	searchLng    = -122.4075
	radiusMeters = 2000

	boxMinLat = 37.775
	boxMinLng = -122.420
	boxMaxLat = 37.795
	boxMaxLng = -122.400

	knnK             = 5
	knnInitialRadius = 500
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

	poiRepo := repository.NewPOIRepository(db)

	fmt.Println("=== Seeding sample data (San Francisco landmarks) ===")
	landmarks := seed.Landmarks()
	if err := poiRepo.UpsertBatch(landmarks); err != nil {
		log.Fatal("Failed to seed sample data:", err)
	}
	fmt.Printf("Inserted %d locations.\n", len(landmarks))

	var remoteClient *remote.Client
	if cfg.GeoFnURL != "" {
		remoteClient = remote.NewClient(cfg.GeoFnURL)
	}
	searchService := service.NewSearchService(poiRepo, remoteClient)

	runClientSideQueries(searchService)

	if remoteClient != nil {
		runRemoteQueries(searchService)
	} else {
		fmt.Println("\nGEOFN_URL not set; skipping remote geo function queries.")
	}

	fmt.Println("\nDone.")
}

func runClientSideQueries(s *service.SearchService) {
	fmt.Println("\n=== Client-side queries (geometry computed in-process) ===")

	fmt.Printf("\n--- Radius search: center (%.4f, %.4f), radius %dm ---\n", searchLat, searchLng, radiusMeters)
	results, err := s.RadiusSearch(searchLat, searchLng, radiusMeters)
	if err != nil {
		log.Fatal("Radius search failed:", err)
	}
	printResults(results)

	fmt.Printf("\n--- Bounding box search: (%.3f, %.3f) to (%.3f, %.3f) ---\n", boxMinLat, boxMinLng, boxMaxLat, boxMaxLng)
	pois, err := s.BBoxSearch(boxMinLat, boxMinLng, boxMaxLat, boxMaxLng)
	if err != nil {
		log.Fatal("Bounding box search failed:", err)
	}
	printPOIs(pois)

	fmt.Printf("\n--- k-NN search: %d nearest to (%.4f, %.4f) ---\n", knnK, searchLat, searchLng)
	nearest, err := s.KNNSearch(searchLat, searchLng, knnK, knnInitialRadius)
	if err != nil {
		log.Fatal("k-NN search failed:", err)
	}
	printResults(nearest)
}

// runRemoteQueries exercises the remote path. Each query type handles its
// own failure: a few retries with backoff (this is caller policy — the
// client itself never retries), then a diagnostic with a remediation hint.
// The client-side queries above keep working regardless.
func runRemoteQueries(s *service.SearchService) {
	fmt.Println("\n=== Remote queries (geometry computed by the geofn service) ===")

	fmt.Printf("\n--- Radius search: center (%.4f, %.4f), radius %dm ---\n", searchLat, searchLng, radiusMeters)
	var results []models.POIResult
	err := retryRemote(func() error {
		var err error
		results, err = s.RadiusSearchRemote(searchLat, searchLng, radiusMeters)
		return err
	})
	if err != nil {
		reportRemoteFailure("radius", err)
	} else {
		printResults(results)
	}

	fmt.Printf("\n--- Bounding box search: (%.3f, %.3f) to (%.3f, %.3f) ---\n", boxMinLat, boxMinLng, boxMaxLat, boxMaxLng)
	var pois []models.POI
	err = retryRemote(func() error {
		var err error
		pois, err = s.BBoxSearchRemote(boxMinLat, boxMinLng, boxMaxLat, boxMaxLng)
		return err
	})
	if err != nil {
		reportRemoteFailure("bbox", err)
	} else {
		printPOIs(pois)
	}

	fmt.Printf("\n--- k-NN search: %d nearest to (%.4f, %.4f) ---\n", knnK, searchLat, searchLng)
	var nearest []models.POIResult
	err = retryRemote(func() error {
		var err error
		nearest, err = s.KNNSearchRemote(searchLat, searchLng, knnK, knnInitialRadius)
		return err
	})
	if err != nil {
		reportRemoteFailure("knn", err)
	} else {
		printResults(nearest)
	}
}

func retryRemote(op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err != nil && !errors.Is(err, remote.ErrUnavailable) {
			// Validation and store errors do not get better on retry.
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
}

func reportRemoteFailure(queryType string, err error) {
	fmt.Printf("Remote %s query failed: %v\n", queryType, err)
	fmt.Println("Hint: start the geofn service (cmd/geofn) and point GEOFN_URL at it, or rerun without GEOFN_URL to use client-side geometry only.")
}

func printResults(results []models.POIResult) {
	if len(results) == 0 {
		fmt.Println("  (no results)")
		return
	}
	for _, r := range results {
		fmt.Printf("  %6.0fm - %s (%s) [%.6f, %.6f]\n",
			r.DistanceMeters, r.Name, r.Category, r.Latitude, r.Longitude)
	}
}

func printPOIs(pois []models.POI) {
	if len(pois) == 0 {
		fmt.Println("  (no results)")
		return
	}
	for _, p := range pois {
		fmt.Printf("  %s (%s) [%.6f, %.6f]\n", p.Name, p.Category, p.Latitude, p.Longitude)
	}
}
