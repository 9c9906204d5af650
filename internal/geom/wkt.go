package geom

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseFootprintWKT parses a POLYGON or MULTIPOLYGON and returns it as a
// multipolygon. Other geometry types are rejected.
func ParseFootprintWKT(s string) (orb.MultiPolygon, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyGeometry
	}
	if strings.Count(s, "(") != strings.Count(s, ")") {
		return nil, errors.New("wkt: unbalanced parentheses")
	}
	g, err := unmarshal(strings.ToUpper(s))
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	return areal(g)
}

func unmarshal(s string) (g orb.Geometry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed geometry %q", s)
		}
	}()
	return wkt.Unmarshal(s)
}

// areal normalizes polygonal geometries to a multipolygon and checks the
// coordinates are usable.
func areal(g orb.Geometry) (orb.MultiPolygon, error) {
	var mp orb.MultiPolygon
	switch g := g.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		mp = g
	case nil:
		return nil, ErrEmptyGeometry
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
	n := 0
	for _, poly := range mp {
		for _, ring := range poly {
			for _, p := range ring {
				if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
					return nil, fmt.Errorf("wkt: non-finite coordinate %v", p)
				}
				n++
			}
		}
	}
	if n == 0 {
		return nil, ErrEmptyGeometry
	}
	return mp, nil
}
