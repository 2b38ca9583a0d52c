package s2geo

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Covering budgets. The client-side read path keeps the budget small so the
// generated range predicate stays manageable; the remote function
// over-covers and relies on promotion plus dedup to shrink the result.
const (
	DefaultMaxCells = 20
	RemoteMaxCells  = 50
)

// CoverCircle computes a covering for the circle of radiusMeters around
// (centerLat, centerLng), modeled as a spherical cap. The returned cells
// are restricted to the index levels and their union is a superset of the
// circle: false positives are expected, false negatives never happen.
func CoverCircle(centerLat, centerLng, radiusMeters float64, maxCells int) ([]s2.CellID, error) {
	if err := ValidateCoordinate(centerLat, centerLng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidRegion, radiusMeters)
	}

	center := s2.PointFromLatLng(s2.LatLngFromDegrees(centerLat, centerLng))
	angle := s1.Angle(radiusMeters / EarthRadiusMeters)
	searchCap := s2.CapFromCenterAngle(center, angle)

	return cover(searchCap, maxCells), nil
}

// CoverRect computes a covering for a lat/lng rectangle, with the same
// index-level restriction and superset guarantee as CoverCircle.
func CoverRect(minLat, minLng, maxLat, maxLng float64, maxCells int) ([]s2.CellID, error) {
	if err := ValidateCoordinate(minLat, minLng); err != nil {
		return nil, err
	}
	if err := ValidateCoordinate(maxLat, maxLng); err != nil {
		return nil, err
	}
	if minLat > maxLat || minLng > maxLng {
		return nil, fmt.Errorf("%w: min corner (%v, %v) exceeds max corner (%v, %v)",
			ErrInvalidRegion, minLat, minLng, maxLat, maxLng)
	}

	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(minLat, minLng)).
		AddPoint(s2.LatLngFromDegrees(maxLat, maxLng))

	return cover(rect, maxCells), nil
}

func cover(region s2.Region, maxCells int) []s2.CellID {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}

	coverer := &s2.RegionCoverer{
		MinLevel: MinIndexLevel,
		MaxLevel: MaxIndexLevel,
		MaxCells: maxCells,
	}
	covering := coverer.Covering(region)

	return PromoteToIndexLevels(covering)
}

// PromoteToIndexLevels restricts a raw covering to the configured index
// levels. A cell at a non-indexed level (13 or 15) is replaced by its
// ancestor at the nearest coarser index level — always coarser, never
// finer, so no coverage is lost. Promotion can coalesce sibling cells onto
// the same parent, so the result is de-duplicated preserving first
// occurrence order.
func PromoteToIndexLevels(cells []s2.CellID) []s2.CellID {
	out := make([]s2.CellID, 0, len(cells))
	seen := make(map[s2.CellID]struct{}, len(cells))

	for _, c := range cells {
		p := promoteCell(c)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func promoteCell(c s2.CellID) s2.CellID {
	level := c.Level()
	if isIndexLevel(level) {
		return c
	}
	// Walk strictly coarser until an index level is hit.
	for l := level - 1; l >= MinIndexLevel; l-- {
		if isIndexLevel(l) {
			return c.Parent(l)
		}
	}
	// The coverer is configured with MinLevel = MinIndexLevel, so a cell
	// coarser than the coarsest index level does not occur.
	return c
}

func isIndexLevel(level int) bool {
	for _, l := range IndexLevels {
		if l == level {
			return true
		}
	}
	return false
}
