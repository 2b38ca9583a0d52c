package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/geopoi/poi-backend-go/internal/database"
	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/remote"
	"github.com/geopoi/poi-backend-go/internal/repository"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
	"github.com/geopoi/poi-backend-go/internal/seed"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(db))
	return db
}

// seededService returns a search service over a store holding the 15
// San Francisco landmarks.
func seededService(t *testing.T, remoteClient *remote.Client) *SearchService {
	t.Helper()

	repo := repository.NewPOIRepository(openTestDB(t))
	require.NoError(t, repo.UpsertBatch(seed.Landmarks()))
	return NewSearchService(repo, remoteClient)
}

// Landmarks within 2000m of Union Square, ascending by distance.
var within2000 = []string{
	"Union Square",
	"Chinatown Gate",
	"Moscone Center",
	"Transamerica Pyramid",
	"City Hall",
	"Ferry Building",
	"Coit Tower",
	"AT&T Park (Oracle Park)",
}

func TestRadiusSearchSeededScenario(t *testing.T) {
	s := seededService(t, nil)

	results, err := s.RadiusSearch(37.7880, -122.4075, 2000)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	assert.Equal(t, within2000, names)

	assert.InDelta(t, 0, results[0].DistanceMeters, 1, "Union Square is the search center")
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].DistanceMeters, results[i-1].DistanceMeters)
		assert.LessOrEqual(t, results[i].DistanceMeters, 2000.0)
	}
}

func TestRadiusSearchPostFilterCorrectness(t *testing.T) {
	s := seededService(t, nil)

	results, err := s.RadiusSearch(37.7880, -122.4075, 2000)
	require.NoError(t, err)

	// Independent check with the reference haversine formula: nothing
	// beyond the radius, and nothing indexed within it missing.
	within := make(map[string]bool)
	for _, poi := range seed.Landmarks() {
		d := s2geo.HaversineDistance(37.7880, -122.4075, poi.Latitude, poi.Longitude)
		if d <= 2000 {
			within[poi.Name] = true
		}
	}
	require.Len(t, results, len(within))
	for _, r := range results {
		assert.True(t, within[r.Name], "%s is outside the radius", r.Name)
	}
}

func TestRadiusSearchValidation(t *testing.T) {
	s := seededService(t, nil)

	_, err := s.RadiusSearch(91, 0, 100)
	assert.ErrorIs(t, err, s2geo.ErrInvalidCoordinate)

	_, err = s.RadiusSearch(0, 0, -1)
	assert.ErrorIs(t, err, s2geo.ErrInvalidRegion)
}

func TestRadiusSearchEmptyArea(t *testing.T) {
	s := seededService(t, nil)

	// Middle of the Pacific: valid query, no candidates.
	results, err := s.RadiusSearch(0, -150, 5000)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBBoxSearchSeededScenario(t *testing.T) {
	s := seededService(t, nil)

	pois, err := s.BBoxSearch(37.775, -122.420, 37.795, -122.400)
	require.NoError(t, err)

	names := make([]string, 0, len(pois))
	for _, p := range pois {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Chinatown Gate", "City Hall", "Moscone Center", "Union Square"}, names)

	for _, p := range pois {
		assert.True(t, p.Latitude >= 37.775 && p.Latitude <= 37.795)
		assert.True(t, p.Longitude >= -122.420 && p.Longitude <= -122.400)
	}
}

func TestBBoxSearchInvalidRegion(t *testing.T) {
	s := seededService(t, nil)

	_, err := s.BBoxSearch(37.795, -122.420, 37.775, -122.400)
	assert.ErrorIs(t, err, s2geo.ErrInvalidRegion)
}

func TestKNNSearchSeededScenario(t *testing.T) {
	s := seededService(t, nil)

	first, err := s.KNNSearch(37.7880, -122.4075, 3, 500)
	require.NoError(t, err)
	require.Len(t, first, 3)

	names := []string{first[0].Name, first[1].Name, first[2].Name}
	assert.Equal(t, []string{"Union Square", "Chinatown Gate", "Moscone Center"}, names)

	// Stable across repeated calls.
	second, err := s.KNNSearch(37.7880, -122.4075, 3, 500)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestKNNSearchFewerThanK(t *testing.T) {
	s := seededService(t, nil)

	// One attempt at 100m finds only Union Square; budget exhaustion with
	// fewer than k results is valid output, not an error.
	results, err := s.KNNSearchWithConfig(37.7880, -122.4075, 3, 100,
		KNNConfig{MaxAttempts: 1, GrowthFactor: 2})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Union Square", results[0].Name)
}

func TestKNNSearchExpansion(t *testing.T) {
	s := seededService(t, nil)

	// Starting from 100m, the loop must keep doubling until it reaches k.
	results, err := s.KNNSearch(37.7880, -122.4075, 5, 100)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].DistanceMeters, results[i-1].DistanceMeters)
	}
}

func TestKNNSearchInvalidK(t *testing.T) {
	s := seededService(t, nil)

	_, err := s.KNNSearch(37.7880, -122.4075, 0, 500)
	assert.Error(t, err)
}

func TestUpsertThenSearchVisibility(t *testing.T) {
	repo := repository.NewPOIRepository(openTestDB(t))
	s := NewSearchService(repo, nil)
	poiSvc := NewPOIService(repo)

	lat, lng := 48.8584, 2.2945
	_, err := poiSvc.Upsert(models.UpsertPOIRequest{
		ID: "poi-eiffel", Name: "Eiffel Tower", Category: "landmark",
		Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)

	results, err := s.RadiusSearch(48.8584, 2.2945, 100)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Eiffel Tower", results[0].Name)
}
