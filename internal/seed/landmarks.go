package seed

import (
	"github.com/google/uuid"

	"github.com/geopoi/poi-backend-go/internal/models"
)

// Landmarks returns the 15 San Francisco sample POIs. IDs are
// deterministic name-derived UUIDs so repeated seeding upserts the same
// rows instead of creating duplicates.
func Landmarks() []models.POI {
	return []models.POI{
		landmark("Golden Gate Bridge", "landmark", 37.8199, -122.4783),
		landmark("Fisherman's Wharf", "landmark", 37.8080, -122.4177),
		landmark("Coit Tower", "landmark", 37.8024, -122.4058),
		landmark("Ferry Building", "landmark", 37.7956, -122.3935),
		landmark("Union Square", "shopping", 37.7880, -122.4075),
		landmark("Chinatown Gate", "landmark", 37.7908, -122.4058),
		landmark("Transamerica Pyramid", "landmark", 37.7952, -122.4028),
		landmark("AT&T Park (Oracle Park)", "sports", 37.7786, -122.3893),
		landmark("Moscone Center", "convention", 37.7840, -122.4010),
		landmark("City Hall", "government", 37.7793, -122.4193),
		landmark("Alamo Square (Painted Ladies)", "landmark", 37.7764, -122.4340),
		landmark("Twin Peaks", "nature", 37.7544, -122.4477),
		landmark("Dolores Park", "park", 37.7596, -122.4269),
		landmark("Palace of Fine Arts", "landmark", 37.8020, -122.4484),
		landmark("Alcatraz Island", "landmark", 37.8267, -122.4230),
	}
}

func landmark(name, category string, lat, lng float64) models.POI {
	return models.POI{
		ID:        DeterministicID(name),
		Name:      name,
		Category:  category,
		Latitude:  lat,
		Longitude: lng,
	}
}

// DeterministicID derives a stable UUID from a name.
func DeterministicID(name string) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(name)).String()
}
