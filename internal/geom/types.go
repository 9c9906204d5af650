package geom

import (
	"github.com/paulmach/orb"
)

// Footprint is a building ground plan with its number of floors.
type Footprint struct {
	Outline orb.MultiPolygon // one or more polygons, first ring of each is the shell
	Floors  int              // always >= 1
	Bound   orb.Bound
}

// NewFootprint wraps an outline and caches its bound. Floor counts below
// one are raised to one.
func NewFootprint(outline orb.MultiPolygon, floors int) Footprint {
	if floors < 1 {
		floors = 1
	}
	return Footprint{Outline: outline, Floors: floors, Bound: outline.Bound()}
}

// Extent returns the union of the footprint bounds. ok is false when fps
// is empty.
func Extent(fps []Footprint) (b orb.Bound, ok bool) {
	for i, fp := range fps {
		if i == 0 {
			b = fp.Bound
			continue
		}
		b = b.Union(fp.Bound)
	}
	return b, len(fps) > 0
}
