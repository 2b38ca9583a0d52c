package s2geo

import "errors"

var (
	// ErrInvalidCoordinate indicates a latitude outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidRegion indicates malformed region bounds, such as a
	// non-positive radius or min > max rectangle corners.
	ErrInvalidRegion = errors.New("invalid region")
)
