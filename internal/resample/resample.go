// Package resample changes the resolution of elevation grids.
//
// Zoom follows the conventions of scipy.ndimage.zoom: the output size is
// the input size times the factor rounded half to even, and the first and
// last output samples coincide with the first and last input samples.
package resample

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"celeris/internal/logging"
)

// Method is an interpolation kernel.
type Method int

const (
	Nearest Method = iota
	Bilinear
	Bicubic
)

var (
	// ErrUnknownMethod is returned by ParseMethod.
	ErrUnknownMethod = errors.New("resample: unknown interpolation type")
	// ErrBadFactor is returned for zoom factors that are not positive and
	// finite, or that shrink an axis to nothing.
	ErrBadFactor = errors.New("resample: invalid zoom factor")
)

var methodNames = [...]string{"nearest", "bilinear", "bicubic"}

// Methods lists the accepted method names.
func Methods() []string { return methodNames[:] }

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Order returns the spline order of the kernel: 0, 1 or 3.
func (m Method) Order() int {
	switch m {
	case Bilinear:
		return 1
	case Bicubic:
		return 3
	}
	return 0
}

// ParseMethod maps "nearest", "bilinear" or "bicubic" to a Method.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if s == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of nearest, bilinear, bicubic)", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(methodNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(methodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Method can be
// bound to a command-line flag.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// OutputSize returns the zoomed length of an axis of n samples.
func OutputSize(n int, factor float64) int {
	return int(math.RoundToEven(float64(n) * factor))
}

// Zoom resamples src by factor along both axes.
func Zoom(src mat.Matrix, factor float64, m Method) (*mat.Dense, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadFactor, factor)
	}
	rows, cols := src.Dims()
	outRows, outCols := OutputSize(rows, factor), OutputSize(cols, factor)
	if outRows < 1 || outCols < 1 {
		return nil, fmt.Errorf("%w: %g gives a %dx%d grid", ErrBadFactor, factor, outRows, outCols)
	}
	logging.Logger().Debug("zoom", "method", m.String(), "in", fmt.Sprintf("%dx%d", rows, cols),
		"out", fmt.Sprintf("%dx%d", outRows, outCols))

	ry, rx := ratio(rows, outRows), ratio(cols, outCols)
	var sample func(y, x float64) float64
	switch m {
	case Nearest:
		sample = nearest(src)
	case Bilinear:
		sample = linear(src)
	case Bicubic:
		sample = cubic(splineCoefficients(src))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}

	dst := mat.NewDense(outRows, outCols, nil)
	for i := 0; i < outRows; i++ {
		y := float64(i) * ry
		for j := 0; j < outCols; j++ {
			dst.Set(i, j, sample(y, float64(j)*rx))
		}
	}
	return dst, nil
}

// ratio maps output index to input coordinate so that both end samples
// line up.
func ratio(in, out int) float64 {
	if out <= 1 {
		return 1
	}
	return float64(in-1) / float64(out-1)
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

func nearest(src mat.Matrix) func(y, x float64) float64 {
	rows, cols := src.Dims()
	return func(y, x float64) float64 {
		r := clampIndex(int(math.Floor(y+0.5)), rows)
		c := clampIndex(int(math.Floor(x+0.5)), cols)
		return src.At(r, c)
	}
}

func linear(src mat.Matrix) func(y, x float64) float64 {
	rows, cols := src.Dims()
	return func(y, x float64) float64 {
		r0, c0 := int(math.Floor(y)), int(math.Floor(x))
		ty, tx := y-float64(r0), x-float64(c0)
		r0, c0 = clampIndex(r0, rows), clampIndex(c0, cols)
		r1, c1 := clampIndex(r0+1, rows), clampIndex(c0+1, cols)
		top := src.At(r0, c0)*(1-tx) + src.At(r0, c1)*tx
		bottom := src.At(r1, c0)*(1-tx) + src.At(r1, c1)*tx
		return top*(1-ty) + bottom*ty
	}
}
