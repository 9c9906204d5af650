package geom

import "errors"

var (
	// ErrMissingColumns is returned when an inventory lacks the geometry or
	// floor count column.
	ErrMissingColumns = errors.New("inventory must contain 'geometry' and 'NFloors' columns")
	// ErrNoFootprints is returned for an inventory without any records.
	ErrNoFootprints = errors.New("inventory has no footprints")
	// ErrUnsupportedGeometry is returned for non-areal geometries.
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	// ErrEmptyGeometry is returned for a polygon without coordinates.
	ErrEmptyGeometry = errors.New("empty geometry")
)
