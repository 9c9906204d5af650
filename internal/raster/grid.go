package raster

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"
)

// Grid is a north-up raster of building heights. Row 0 is the row with the
// highest world Y.
type Grid struct {
	rows, cols int
	dx, dy     float64
	extent     orb.Bound
	cells      []uint16 // row-major
}

func newGrid(rows, cols int, extent orb.Bound, dx, dy float64) *Grid {
	return &Grid{
		rows:   rows,
		cols:   cols,
		dx:     dx,
		dy:     dy,
		extent: extent,
		cells:  make([]uint16, rows*cols),
	}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Extent returns the world-space bound of the footprints the grid was
// built from.
func (g *Grid) Extent() orb.Bound { return g.extent }

// At returns the height stored at row r, column c.
func (g *Grid) At(r, c int) uint16 {
	return g.cells[r*g.cols+c]
}

// raise stores h at (r, c) unless the cell already holds a taller value.
// Out-of-range indices are ignored.
func (g *Grid) raise(r, c int, h uint16) bool {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return false
	}
	i := r*g.cols + c
	if h > g.cells[i] {
		g.cells[i] = h
	}
	return true
}

// CellBound returns the world-space rectangle covered by cell (r, c).
func (g *Grid) CellBound(r, c int) orb.Bound {
	x0 := g.extent.Min[0] + float64(c)*g.dx
	y0 := g.extent.Min[1] + float64(g.rows-r-1)*g.dy
	return orb.Bound{
		Min: orb.Point{x0, y0},
		Max: orb.Point{x0 + g.dx, y0 + g.dy},
	}
}

// Max returns the tallest cell value.
func (g *Grid) Max() uint16 {
	var m uint16
	for _, v := range g.cells {
		m = max(m, v)
	}
	return m
}

// Covered returns the number of non-zero cells.
func (g *Grid) Covered() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Dense copies the grid into a float matrix for output.
func (g *Grid) Dense() *mat.Dense {
	data := make([]float64, len(g.cells))
	for i, v := range g.cells {
		data[i] = float64(v)
	}
	return mat.NewDense(g.rows, g.cols, data)
}

// heightValue converts a floor count into a stored cell value, truncating
// toward zero and saturating at the uint16 range.
func heightValue(floors int, floorHeight float64) uint16 {
	h := math.Floor(float64(floors) * floorHeight)
	switch {
	case h <= 0 || math.IsNaN(h):
		return 0
	case h >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(h)
}
