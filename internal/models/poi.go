package models

// POI is a geo-tagged point of interest, the application-level view of a
// point_of_interest row. Identity is the opaque ID; name and category are
// mutable display attributes; position is mandatory.
type POI struct {
	ID        string  `json:"id" db:"poi_id"`
	Name      string  `json:"name" db:"name"`
	Category  string  `json:"category,omitempty" db:"category"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// POIResult pairs a POI with its distance from a search center.
type POIResult struct {
	POI
	DistanceMeters float64 `json:"distanceMeters"`
}

// IndexEntry is one row of the location index: a cell token for a POI at
// one resolution level. A POI owns exactly one entry per index level.
type IndexEntry struct {
	PoiID     string `json:"poiId" db:"poi_id"`
	CellID    int64  `json:"cellId" db:"s2_cell_id"`
	CellLevel int    `json:"cellLevel" db:"cell_level"`
}
