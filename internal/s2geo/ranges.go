package s2geo

import "github.com/golang/geo/s2"

// CellIDRange is the closed interval spanning one covering cell and every
// leaf cell nested inside it, in stored (signed) form. Each range maps
// directly to a SQL BETWEEN predicate.
type CellIDRange struct {
	Min int64
	Max int64
}

// ToRanges expands each covering cell into its leaf range. One cell yields
// exactly one range. Adjacent or overlapping ranges are not merged; the
// query layer ORs them together, so merging would only be an optimization.
func ToRanges(cells []s2.CellID) []CellIDRange {
	ranges := make([]CellIDRange, 0, len(cells))
	for _, c := range cells {
		ranges = append(ranges, CellIDRange{
			Min: StoredCellID(c.RangeMin()),
			Max: StoredCellID(c.RangeMax()),
		})
	}
	return ranges
}
