package shade

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Stats summarizes a grid.
type Stats struct {
	Rows, Cols     int
	Min, Max, Mean float64
}

// Summarize computes grid statistics.
func Summarize(m mat.Matrix) Stats {
	rows, cols := m.Dims()
	v := values(m)
	return Stats{
		Rows: rows,
		Cols: cols,
		Min:  floats.Min(v),
		Max:  floats.Max(v),
		Mean: floats.Sum(v) / float64(len(v)),
	}
}

func values(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// Normalize rescales m linearly so its minimum maps to 0 and its maximum
// to 1. A constant grid maps to all zeros.
func Normalize(m mat.Matrix) *mat.Dense {
	s := Summarize(m)
	span := s.Max - s.Min
	out := mat.DenseCopyOf(m)
	out.Apply(func(_, _ int, v float64) float64 {
		if span == 0 {
			return 0
		}
		return (v - s.Min) / span
	}, out)
	return out
}

// Colorize maps every cell of m through cmap after normalization. Pixel
// (x, y) is cell (row y, column x).
func Colorize(m mat.Matrix, cmap Colormap) *image.NRGBA {
	n := Normalize(m)
	rows, cols := n.Dims()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetNRGBA(x, y, cmap.At(n.At(y, x)))
		}
	}
	return img
}

// LightSource is a distant light given by azimuth (degrees clockwise from
// north) and altitude (degrees above the horizon).
type LightSource struct {
	Azimuth  float64
	Altitude float64
}

// DefaultLight shines from the north-west, 45 degrees up.
var DefaultLight = LightSource{Azimuth: 315, Altitude: 45}

// Direction returns the unit vector pointing towards the light.
func (ls LightSource) Direction() [3]float64 {
	az := (90 - ls.Azimuth) * math.Pi / 180
	alt := ls.Altitude * math.Pi / 180
	return [3]float64{math.Cos(az) * math.Cos(alt), math.Sin(az) * math.Cos(alt), math.Sin(alt)}
}

// Hillshade returns the illumination intensity in [0, 1] of every cell.
// Row 0 is taken as the northern edge. dx and dy are the cell spacings.
func Hillshade(m mat.Matrix, ls LightSource, vertExag, dx, dy float64) *mat.Dense {
	rows, cols := m.Dims()
	elev := mat.NewDense(rows, cols, nil)
	elev.Scale(vertExag, m)
	// image rows run southwards, so the y spacing is negative
	gy := gradient(elev, 0, -dy)
	gx := gradient(elev, 1, dx)
	dir := ls.Direction()

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			nx, ny, nz := -gx.At(i, j), -gy.At(i, j), 1.0
			norm := math.Sqrt(nx*nx + ny*ny + nz*nz)
			out.Set(i, j, (nx*dir[0]+ny*dir[1]+nz*dir[2])/norm)
		}
	}
	lo, hi := mat.Min(out), mat.Max(out)
	out.Apply(func(_, _ int, v float64) float64 {
		if hi-lo > 1e-6 {
			v = (v - lo) / (hi - lo)
		}
		return min(max(v, 0), 1)
	}, out)
	return out
}

// gradient differentiates m along axis (0 = rows, 1 = columns) with
// central differences inside and one-sided differences at the edges. An
// axis with a single sample has zero gradient.
func gradient(m mat.Matrix, axis int, h float64) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	n := rows
	if axis == 1 {
		n = cols
	}
	if n < 2 {
		return out
	}
	at := func(i, k int) float64 {
		if axis == 0 {
			return m.At(k, i)
		}
		return m.At(i, k)
	}
	set := func(i, k int, v float64) {
		if axis == 0 {
			out.Set(k, i, v)
		} else {
			out.Set(i, k, v)
		}
	}
	lines := cols
	if axis == 1 {
		lines = rows
	}
	for i := 0; i < lines; i++ {
		set(i, 0, (at(i, 1)-at(i, 0))/h)
		set(i, n-1, (at(i, n-1)-at(i, n-2))/h)
		for k := 1; k < n-1; k++ {
			set(i, k, (at(i, k+1)-at(i, k-1))/(2*h))
		}
	}
	return out
}

// Shade colors m with cmap and darkens or lightens it by the hillshade
// intensity using overlay blending.
func Shade(m mat.Matrix, cmap Colormap, ls LightSource) *image.NRGBA {
	base := Colorize(m, cmap)
	intensity := Hillshade(m, ls, 1, 1, 1)
	b := base.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := base.NRGBAAt(x, y)
			in := intensity.At(y, x)
			base.SetNRGBA(x, y, color.NRGBA{
				R: overlay(c.R, in),
				G: overlay(c.G, in),
				B: overlay(c.B, in),
				A: c.A,
			})
		}
	}
	return base
}

func overlay(c uint8, intensity float64) uint8 {
	v := float64(c) / 255
	if v <= 0.5 {
		v = 2 * intensity * v
	} else {
		v = 1 - 2*(1-intensity)*(1-v)
	}
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
