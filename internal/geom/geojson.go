package geom

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSONInventory reads a FeatureCollection of Polygon/MultiPolygon
// features. The floor count comes from the NFloors property; features
// without one have a single floor. Features with other geometry types are
// rejected.
func ReadGeoJSONInventory(r io.Reader) ([]Footprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	var fps []Footprint
	for i, f := range fc.Features {
		outline, err := areal(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("geojson feature %d: %w", i, err)
		}
		fps = append(fps, NewFootprint(outline, floorsProperty(f.Properties[FloorsColumn])))
	}
	if len(fps) == 0 {
		return nil, ErrNoFootprints
	}
	return fps, nil
}

func floorsProperty(v any) int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || t < 1 {
			return 1
		}
		return ParseFloors(strconv.FormatFloat(t, 'f', -1, 64))
	case string:
		return ParseFloors(t)
	default:
		return 1
	}
}
