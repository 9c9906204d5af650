// Package shade turns elevation grids into colors: colormaps, min/max
// normalization and hillshading with a directional light source.
package shade

import (
	"image/color"
	"math"
)

// Colormap maps a value in [0, 1] to a color.
type Colormap interface {
	At(v float64) color.NRGBA
}

// Ramp is a colormap interpolating linearly between evenly spaced stops.
type Ramp struct {
	Name  string
	Stops []color.NRGBA
}

// At returns the color for v. Values outside [0, 1] are clamped; NaN maps
// to transparent.
func (r Ramp) At(v float64) color.NRGBA {
	if math.IsNaN(v) || len(r.Stops) == 0 {
		return color.NRGBA{}
	}
	v = min(max(v, 0), 1)
	pos := v * float64(len(r.Stops)-1)
	i := int(pos)
	if i >= len(r.Stops)-1 {
		return r.Stops[len(r.Stops)-1]
	}
	t := pos - float64(i)
	a, b := r.Stops[i], r.Stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// Viridis is matplotlib's default perceptually uniform colormap.
var Viridis = Ramp{
	Name: "viridis",
	Stops: []color.NRGBA{
		{0x44, 0x01, 0x54, 0xff},
		{0x48, 0x24, 0x75, 0xff},
		{0x41, 0x44, 0x87, 0xff},
		{0x35, 0x5f, 0x8d, 0xff},
		{0x2a, 0x78, 0x8e, 0xff},
		{0x21, 0x91, 0x8c, 0xff},
		{0x22, 0xa8, 0x84, 0xff},
		{0x44, 0xbf, 0x70, 0xff},
		{0x7a, 0xd1, 0x51, 0xff},
		{0xbd, 0xdf, 0x26, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	},
}

// Gray runs from black to white.
var Gray = Ramp{
	Name:  "gray",
	Stops: []color.NRGBA{{0, 0, 0, 0xff}, {0xff, 0xff, 0xff, 0xff}},
}

// ByName returns the colormap called name.
func ByName(name string) (Colormap, bool) {
	switch name {
	case Viridis.Name:
		return Viridis, true
	case Gray.Name:
		return Gray, true
	}
	return nil, false
}
