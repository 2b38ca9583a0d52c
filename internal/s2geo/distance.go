package s2geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// DistanceMeters returns the great-circle distance between two points in
// meters, from the S2 angular distance scaled by the mean Earth radius.
// This is the formula used by every post-filter in this repo, on both the
// client-side and remote paths, so the two paths agree to the meter.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// HaversineDistance is the textbook haversine formula. Kept as an
// independent reference implementation; it agrees with DistanceMeters to
// well under a meter at city scale.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
