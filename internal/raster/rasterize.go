// Package raster burns building footprints into a north-up height grid.
//
// Every cell whose rectangle shares a point with a footprint (edges and
// corners included) takes the footprint height, floors times floor height
// rounded down. Where footprints overlap the tallest one wins.
package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"seehuhn.de/go/geom/rect"

	"celeris/internal/geom"
	"celeris/internal/logging"
)

// Default cell size (degrees, roughly one metre) and storey height.
const (
	DefaultCellSize    = 0.000009000009
	DefaultFloorHeight = 3.0
)

// maxCells bounds the grid allocation.
const maxCells = 1 << 30

var (
	// ErrInvalidOptions is returned for non-positive or non-finite sizes.
	ErrInvalidOptions = errors.New("raster: cell size and floor height must be positive")
	// ErrNoFootprints is returned when there is nothing to rasterize.
	ErrNoFootprints = errors.New("raster: no footprints")
	// ErrTooLarge is returned when the grid would exceed maxCells.
	ErrTooLarge = errors.New("raster: grid too large")
)

// Options controls the grid resolution and the height per floor.
type Options struct {
	DX, DY      float64
	FloorHeight float64
}

// DefaultOptions returns the settings used by the command-line tool.
func DefaultOptions() Options {
	return Options{DX: DefaultCellSize, DY: DefaultCellSize, FloorHeight: DefaultFloorHeight}
}

// Validate checks that all sizes are finite and positive.
func (o Options) Validate() error {
	for _, v := range []float64{o.DX, o.DY, o.FloorHeight} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: dx=%g dy=%g floor_height=%g", ErrInvalidOptions, o.DX, o.DY, o.FloorHeight)
		}
	}
	return nil
}

// Rasterize fills a grid spanning the union extent of fps.
func Rasterize(fps []geom.Footprint, opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ext, ok := geom.Extent(fps)
	if !ok {
		return nil, ErrNoFootprints
	}
	cols := int(math.Floor((ext.Max[0]-ext.Min[0])/opts.DX)) + 1
	rows := int(math.Floor((ext.Max[1]-ext.Min[1])/opts.DY)) + 1
	if cols <= 0 || rows <= 0 || float64(rows)*float64(cols) > maxCells {
		return nil, fmt.Errorf("%w: %d x %d", ErrTooLarge, cols, rows)
	}
	g := newGrid(rows, cols, ext, opts.DX, opts.DY)
	log := logging.Logger()
	log.Debug("grid allocated", "width", cols, "height", rows, "footprints", len(fps))

	for i, fp := range fps {
		h := heightValue(fp.Floors, opts.FloorHeight)
		local := translate(fp.Outline, -ext.Min[0], -ext.Min[1])
		b := local.Bound()
		minCol := int(math.Floor(b.Min[0] / opts.DX))
		maxCol := int(math.Floor(b.Max[0] / opts.DX))
		minRow := int(math.Floor(b.Min[1] / opts.DY))
		maxRow := int(math.Floor(b.Max[1] / opts.DY))

		hits := 0
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				cell := rect.Rect{
					LLx: float64(col) * opts.DX,
					LLy: float64(row) * opts.DY,
					URx: float64(col+1) * opts.DX,
					URy: float64(row+1) * opts.DY,
				}
				if !Intersects(local, cell) {
					continue
				}
				if g.raise(rows-row-1, col, h) {
					hits++
				}
			}
		}
		log.Debug("footprint rasterized", "index", i, "floors", fp.Floors, "height", h,
			"cols", fmt.Sprintf("%d-%d", minCol, maxCol), "rows", fmt.Sprintf("%d-%d", minRow, maxRow), "cells", hits)
	}
	return g, nil
}

// translate returns a copy of mp shifted by (dx, dy).
func translate(mp orb.MultiPolygon, dx, dy float64) orb.MultiPolygon {
	out := make(orb.MultiPolygon, len(mp))
	for i, poly := range mp {
		out[i] = make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, p := range ring {
				r[k] = orb.Point{p[0] + dx, p[1] + dy}
			}
			out[i][j] = r
		}
	}
	return out
}
