package models

// UpsertPOIRequest is the ingestion payload. Latitude and longitude are
// pointers so that binding can tell a missing field from a legitimate zero.
type UpsertPOIRequest struct {
	ID        string   `json:"id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Category  string   `json:"category"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// RadiusQuery represents query parameters for a radius search.
type RadiusQuery struct {
	Lat    float64 `form:"lat"`
	Lng    float64 `form:"lng"`
	Radius float64 `form:"radius"`
}

// BBoxQuery represents query parameters for a bounding box search.
type BBoxQuery struct {
	MinLat float64 `form:"minLat"`
	MinLng float64 `form:"minLng"`
	MaxLat float64 `form:"maxLat"`
	MaxLng float64 `form:"maxLng"`
}

// KNNQuery represents query parameters for a k-nearest-neighbor search.
// Radius is the initial search radius; it doubles on each expansion.
type KNNQuery struct {
	Lat    float64 `form:"lat"`
	Lng    float64 `form:"lng"`
	K      int     `form:"k"`
	Radius float64 `form:"radius"`
}
