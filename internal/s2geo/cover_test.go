package s2geo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverCircleOnlyIndexLevels(t *testing.T) {
	cells, err := CoverCircle(37.7880, -122.4075, 2000, DefaultMaxCells)
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	for _, c := range cells {
		assert.Contains(t, IndexLevels, c.Level())
	}
}

func TestCoverCircleValidation(t *testing.T) {
	_, err := CoverCircle(91, 0, 100, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = CoverCircle(0, 0, 0, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = CoverCircle(0, 0, -5, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestCoverRectValidation(t *testing.T) {
	_, err := CoverRect(10, 10, 5, 20, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = CoverRect(10, 20, 20, 10, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = CoverRect(-91, 0, 0, 0, DefaultMaxCells)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

// A zero-area rectangle is degenerate but valid: the covering must still
// contain the point.
func TestCoverRectDegenerate(t *testing.T) {
	cells, err := CoverRect(0, 0, 0, 0, DefaultMaxCells)
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(0, 0))
	contained := false
	for _, c := range cells {
		if c.Contains(leaf.Parent(MaxIndexLevel)) {
			contained = true
		}
	}
	assert.True(t, contained, "covering must contain the point's finest-level cell")
}

// Superset invariant: any point inside the circle must have at least one
// index token falling inside at least one covering range — the exact
// condition the index scan matches on. False positives are allowed, false
// negatives are not.
func TestCoverCircleSupersetInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	centerLat, centerLng := 37.7880, -122.4075
	radius := 1500.0

	cells, err := CoverCircle(centerLat, centerLng, radius, DefaultMaxCells)
	require.NoError(t, err)
	ranges := ToRanges(cells)
	require.NotEmpty(t, ranges)

	for i := 0; i < 200; i++ {
		// Random point strictly inside the circle.
		dist := rng.Float64() * radius * 0.95
		bearing := rng.Float64() * 2 * math.Pi
		lat := centerLat + (dist*math.Cos(bearing))/111320
		lng := centerLng + (dist*math.Sin(bearing))/(111320*math.Cos(centerLat*math.Pi/180))

		tokens, err := EncodeCellIDs(lat, lng)
		require.NoError(t, err)

		matched := false
		for _, token := range tokens {
			stored := StoredCellID(token)
			for _, r := range ranges {
				if stored >= r.Min && stored <= r.Max {
					matched = true
				}
			}
		}
		assert.True(t, matched, "point (%v, %v) at %vm escaped the covering", lat, lng, dist)
	}
}

func TestCoverRectSupersetInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	minLat, minLng, maxLat, maxLng := 37.775, -122.420, 37.795, -122.400

	cells, err := CoverRect(minLat, minLng, maxLat, maxLng, DefaultMaxCells)
	require.NoError(t, err)
	ranges := ToRanges(cells)
	require.NotEmpty(t, ranges)

	for i := 0; i < 200; i++ {
		lat := minLat + rng.Float64()*(maxLat-minLat)
		lng := minLng + rng.Float64()*(maxLng-minLng)

		tokens, err := EncodeCellIDs(lat, lng)
		require.NoError(t, err)

		matched := false
		for _, token := range tokens {
			stored := StoredCellID(token)
			for _, r := range ranges {
				if stored >= r.Min && stored <= r.Max {
					matched = true
				}
			}
		}
		assert.True(t, matched, "point (%v, %v) escaped the covering", lat, lng)
	}
}

func TestPromoteToIndexLevels(t *testing.T) {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(37.7880, -122.4075))

	// Cells already at index levels pass through unchanged.
	in := []s2.CellID{leaf.Parent(12), leaf.Parent(14), leaf.Parent(16)}
	assert.Equal(t, in, PromoteToIndexLevels(in))

	// Non-indexed levels promote to the nearest coarser index level.
	out := PromoteToIndexLevels([]s2.CellID{leaf.Parent(13)})
	require.Len(t, out, 1)
	assert.Equal(t, leaf.Parent(12), out[0])

	out = PromoteToIndexLevels([]s2.CellID{leaf.Parent(15)})
	require.Len(t, out, 1)
	assert.Equal(t, leaf.Parent(14), out[0])
}

func TestPromoteToIndexLevelsDedup(t *testing.T) {
	parent := s2.CellIDFromLatLng(s2.LatLngFromDegrees(37.7880, -122.4075)).Parent(12)

	// All four level-13 children promote onto the same level-12 parent.
	var siblings []s2.CellID
	for child := parent.ChildBegin(); child != parent.ChildEnd(); child = child.Next() {
		siblings = append(siblings, child)
	}
	require.Len(t, siblings, 4)

	out := PromoteToIndexLevels(siblings)
	require.Len(t, out, 1)
	assert.Equal(t, parent, out[0])
}
