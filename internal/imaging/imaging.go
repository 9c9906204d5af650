// Package imaging renders grids to PNG files.
package imaging

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"

	"celeris/internal/logging"
	"celeris/internal/shade"
)

// Figure layout in pixels.
const (
	PanelSize = 800
	Margin    = 24
	BarWidth  = 20
	BarGap    = 16
)

// Figure controls the decorations of SaveFigure.
type Figure struct {
	// Colorbar, when set, adds a vertical bar running from the colormap's
	// low end at the bottom to its high end at the top.
	Colorbar shade.Colormap
}

// Cells draws m with one pixel per cell, row 0 at the top.
func Cells(m mat.Matrix, cmap shade.Colormap) *gg.Context {
	n := shade.Normalize(m)
	rows, cols := n.Dims()
	dc := gg.NewContext(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dc.SetPixel(x, y, toRGBA(cmap.At(n.At(y, x))))
		}
	}
	return dc
}

// SaveColormap writes m to path as a PNG with one pixel per cell.
func SaveColormap(path string, m mat.Matrix, cmap shade.Colormap) error {
	dc := Cells(m, cmap)
	defer dc.Close()
	logging.Logger().Debug("save colormap", "path", path, "width", dc.Width(), "height", dc.Height())
	return dc.SavePNG(path)
}

// PanelBounds returns the size of the data panel for an image of w by h
// pixels, fitted into a PanelSize square.
func PanelBounds(w, h int) (int, int) {
	s := float64(PanelSize) / float64(max(w, h))
	return max(1, int(float64(w)*s+0.5)), max(1, int(float64(h)*s+0.5))
}

// Render composes img into a framed figure.
func Render(img image.Image, fig Figure) (*gg.Context, error) {
	b := img.Bounds()
	pw, ph := PanelBounds(b.Dx(), b.Dy())
	width := 2*Margin + pw
	if fig.Colorbar != nil {
		width += BarGap + BarWidth
	}
	height := 2*Margin + ph

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	panel := image.Rect(Margin, Margin, Margin+pw, Margin+ph)
	scaler := draw.Interpolator(draw.NearestNeighbor)
	if pw < b.Dx() {
		scaler = draw.CatmullRom
	}
	scaler.Scale(canvas, panel, img, b, draw.Over, nil)

	dc := gg.NewContextForImage(canvas)
	if fig.Colorbar != nil {
		x0 := panel.Max.X + BarGap
		for y := 0; y < ph; y++ {
			v := 1.0
			if ph > 1 {
				v = 1 - float64(y)/float64(ph-1)
			}
			c := toRGBA(fig.Colorbar.At(v))
			for x := x0; x < x0+BarWidth; x++ {
				dc.SetPixel(x, Margin+y, c)
			}
		}
		if err := frame(dc, x0, Margin, BarWidth, ph); err != nil {
			dc.Close()
			return nil, err
		}
	}
	if err := frame(dc, Margin, Margin, pw, ph); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// SaveFigure writes img as a framed PNG figure to path.
func SaveFigure(path string, img image.Image, fig Figure) error {
	dc, err := Render(img, fig)
	if err != nil {
		return err
	}
	defer dc.Close()
	logging.Logger().Debug("save figure", "path", path, "width", dc.Width(), "height", dc.Height())
	return dc.SavePNG(path)
}

// frame strokes a one pixel outline just outside the given rectangle.
func frame(dc *gg.Context, x, y, w, h int) error {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(x)-0.5, float64(y)-0.5, float64(w)+1, float64(h)+1)
	return dc.Stroke()
}

// toRGBA converts c to gg's float color. The half step keeps the 8-bit
// channel values intact when gg truncates them back.
func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA{
		R: (float64(c.R) + 0.5) / 255,
		G: (float64(c.G) + 0.5) / 255,
		B: (float64(c.B) + 0.5) / 255,
		A: (float64(c.A) + 0.5) / 255,
	}
}
