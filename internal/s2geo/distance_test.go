package s2geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMetersZero(t *testing.T) {
	assert.InDelta(t, 0, DistanceMeters(37.7880, -122.4075, 37.7880, -122.4075), 1e-9)
}

func TestDistanceMetersKnownPairs(t *testing.T) {
	// Union Square to Chinatown Gate, roughly 345m.
	d := DistanceMeters(37.7880, -122.4075, 37.7908, -122.4058)
	assert.InDelta(t, 345, d, 5)

	// Union Square to Ferry Building, roughly 1.49km.
	d = DistanceMeters(37.7880, -122.4075, 37.7956, -122.3935)
	assert.InDelta(t, 1492, d, 10)
}

// The S2 angular formula and the textbook haversine compute the same
// spherical distance; they should agree far below the meter at city scale.
func TestDistanceFormulasAgree(t *testing.T) {
	pairs := [][4]float64{
		{37.7880, -122.4075, 37.7908, -122.4058},
		{37.7880, -122.4075, 37.8199, -122.4783},
		{0, 0, 0, 1},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		s2d := DistanceMeters(p[0], p[1], p[2], p[3])
		hav := HaversineDistance(p[0], p[1], p[2], p[3])
		assert.InDelta(t, s2d, hav, 0.1, "pair %v", p)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := DistanceMeters(37.7880, -122.4075, 37.8199, -122.4783)
	b := DistanceMeters(37.8199, -122.4783, 37.7880, -122.4075)
	assert.InDelta(t, a, b, 1e-6)
}
