package s2geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// IndexLevels are the S2 cell levels the location index stores tokens at,
// coarsest first. Multiple levels balance index size against query
// selectivity: level 12 cells are roughly 3.3km across, level 14 roughly
// 800m, level 16 roughly 150m.
var IndexLevels = []int{12, 14, 16}

const (
	// MinIndexLevel is the coarsest indexed level.
	MinIndexLevel = 12
	// MaxIndexLevel is the finest indexed level.
	MaxIndexLevel = 16
)

// EarthRadiusMeters is the mean Earth radius, used to convert between
// surface distances and angles subtended at the Earth's center.
const EarthRadiusMeters = 6371000.0

// ValidateCoordinate checks that a latitude/longitude pair is within the
// valid geographic ranges.
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v not in [-180, 180]", ErrInvalidCoordinate, lng)
	}
	return nil
}

// EncodeCellIDs encodes a point into the S2 cells containing it at each
// index level, coarsest first. Each returned cell is an ancestor of every
// cell after it. The function is pure: identical input always yields
// identical output.
func EncodeCellIDs(lat, lng float64) ([]s2.CellID, error) {
	if err := ValidateCoordinate(lat, lng); err != nil {
		return nil, err
	}

	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng))
	cells := make([]s2.CellID, 0, len(IndexLevels))
	for _, level := range IndexLevels {
		cells = append(cells, leaf.Parent(level))
	}
	return cells, nil
}

// ParentAtLevel returns the ancestor of id at the given level, or id itself
// if it is already at or above that level.
func ParentAtLevel(id s2.CellID, level int) s2.CellID {
	if level >= id.Level() {
		return id
	}
	return id.Parent(level)
}

// StoredCellID converts a cell ID to the signed 64-bit form persisted in
// the index column. The bit pattern is preserved exactly, not the numeric
// value: cells on faces 4 and 5 come out negative. Ordering within one face
// survives the reinterpretation; a total numeric order across faces does
// not, which is fine because a range scan never crosses faces.
func StoredCellID(id s2.CellID) int64 {
	return int64(uint64(id))
}

// CellIDFromStored is the exact inverse of StoredCellID.
func CellIDFromStored(v int64) s2.CellID {
	return s2.CellID(uint64(v))
}
