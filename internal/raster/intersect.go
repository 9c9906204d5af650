package raster

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Intersects reports whether the multipolygon and the closed cell share at
// least one point. Touching edges and corners count.
func Intersects(mp orb.MultiPolygon, cell rect.Rect) bool {
	for _, poly := range mp {
		if polygonIntersects(poly, cell) {
			return true
		}
	}
	return false
}

func polygonIntersects(poly orb.Polygon, cell rect.Rect) bool {
	if len(poly) == 0 {
		return false
	}
	b := poly.Bound()
	if b.Max[0] < cell.LLx || b.Min[0] > cell.URx || b.Max[1] < cell.LLy || b.Min[1] > cell.URy {
		return false
	}
	// Any ring edge (holes included) reaching the cell puts polygon
	// boundary inside it.
	for _, ring := range poly {
		switch len(ring) {
		case 0:
			continue
		case 1:
			if pointInCell(toVec(ring[0]), cell) {
				return true
			}
			continue
		}
		for i := range ring {
			a := toVec(ring[i])
			z := toVec(ring[(i+1)%len(ring)])
			if segmentTouches(a, z, cell) {
				return true
			}
		}
	}
	// No boundary crosses the cell, so the cell lies wholly inside or
	// wholly outside the polygon: one corner decides.
	return planar.PolygonContains(poly, orb.Point{cell.LLx, cell.LLy})
}

func toVec(p orb.Point) vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

func pointInCell(p vec.Vec2, cell rect.Rect) bool {
	return p.X >= cell.LLx && p.X <= cell.URx && p.Y >= cell.LLy && p.Y <= cell.URy
}

// segmentTouches clips segment a-z against the closed cell
// (Liang-Barsky) and reports whether anything is left.
func segmentTouches(a, z vec.Vec2, cell rect.Rect) bool {
	d := z.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	return clip(-d.X, a.X-cell.LLx) &&
		clip(d.X, cell.URx-a.X) &&
		clip(-d.Y, a.Y-cell.LLy) &&
		clip(d.Y, cell.URy-a.Y)
}
