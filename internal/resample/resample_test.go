package resample

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sampleGrid() *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 12,
	})
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in    string
		want  Method
		order int
	}{
		{"nearest", Nearest, 0},
		{"bilinear", Bilinear, 1},
		{"bicubic", Bicubic, 3},
	}
	for _, tc := range tests {
		m, err := ParseMethod(tc.in)
		if err != nil {
			t.Fatalf("ParseMethod(%q) error = %v", tc.in, err)
		}
		if m != tc.want || m.Order() != tc.order || m.String() != tc.in {
			t.Errorf("ParseMethod(%q) = %v (order %d), want %v (order %d)", tc.in, m, m.Order(), tc.want, tc.order)
		}
	}
	if _, err := ParseMethod("lanczos"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("ParseMethod(lanczos) error = %v, want %v", err, ErrUnknownMethod)
	}
}

func TestMethodText(t *testing.T) {
	var m Method
	if err := m.UnmarshalText([]byte("bicubic")); err != nil || m != Bicubic {
		t.Fatalf("UnmarshalText(bicubic) = %v, %v", m, err)
	}
	b, err := Bilinear.MarshalText()
	if err != nil || string(b) != "bilinear" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	if err := m.UnmarshalText([]byte("cubic")); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("UnmarshalText(cubic) error = %v, want %v", err, ErrUnknownMethod)
	}
	if m != Bicubic {
		t.Errorf("failed UnmarshalText changed the method to %v", m)
	}
}

func TestZoomIdentity(t *testing.T) {
	src := sampleGrid()
	for _, m := range []Method{Nearest, Bilinear, Bicubic} {
		t.Run(m.String(), func(t *testing.T) {
			got, err := Zoom(src, 1.0, m)
			if err != nil {
				t.Fatalf("Zoom() error = %v", err)
			}
			if m == Nearest {
				if !mat.Equal(got, src) {
					t.Errorf("Zoom(1, nearest) = %v, want input", mat.Formatted(got))
				}
				return
			}
			if !mat.EqualApprox(got, src, 1e-9) {
				t.Errorf("Zoom(1, %v) = %v, want input", m, mat.Formatted(got))
			}
		})
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		n      int
		factor float64
		want   int
	}{
		{3, 2, 6},
		{3, 1.5, 4}, // 4.5 rounds half to even
		{5, 1.5, 8}, // 7.5 rounds half to even
		{4, 0.5, 2},
		{10, 0.33, 3},
	}
	for _, tc := range tests {
		if got := OutputSize(tc.n, tc.factor); got != tc.want {
			t.Errorf("OutputSize(%d, %g) = %d, want %d", tc.n, tc.factor, got, tc.want)
		}
	}
}

func TestZoomBilinearMidpoints(t *testing.T) {
	src := mat.NewDense(1, 2, []float64{0, 10})
	got, err := Zoom(src, 1.5, Bilinear)
	if err != nil {
		t.Fatal(err)
	}
	// 2 samples -> 3: coordinates 0, 0.5, 1
	r, c := got.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Zoom() dims = %dx%d, want 2x3", r, c)
	}
	want := []float64{0, 5, 10}
	for i := 0; i < r; i++ {
		for j, w := range want {
			if v := got.At(i, j); math.Abs(v-w) > 1e-12 {
				t.Errorf("At(%d, %d) = %g, want %g", i, j, v, w)
			}
		}
	}
}

func TestZoomNearestDoubles(t *testing.T) {
	src := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	got, err := Zoom(src, 2, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	// 2 -> 4 samples at coordinates 0, 1/3, 2/3, 1
	want := mat.NewDense(4, 4, []float64{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	})
	if !mat.Equal(got, want) {
		t.Errorf("Zoom(2, nearest) = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}
}

func TestZoomBicubicHitsSamples(t *testing.T) {
	src := sampleGrid()
	// 3x4 -> 5x7: output coordinates step by 0.5, so even indices land on
	// input samples.
	got, err := Zoom(src, 5.0/3.0, Bicubic)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := got.Dims(); r != 5 || c != 7 {
		t.Fatalf("Zoom() dims = %dx%d, want 5x7", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if v, want := got.At(2*i, 2*j), src.At(i, j); math.Abs(v-want) > 1e-9 {
				t.Errorf("At(%d, %d) = %g, want %g", 2*i, 2*j, v, want)
			}
		}
	}
}

func TestZoomBicubicConstant(t *testing.T) {
	src := mat.NewDense(4, 5, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			src.Set(i, j, 7.5)
		}
	}
	got, err := Zoom(src, 2.5, Bicubic)
	if err != nil {
		t.Fatal(err)
	}
	r, c := got.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := got.At(i, j); math.Abs(v-7.5) > 1e-9 {
				t.Fatalf("At(%d, %d) = %g, want 7.5", i, j, v)
			}
		}
	}
}

func TestZoomErrors(t *testing.T) {
	src := sampleGrid()
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), 0.1} {
		if _, err := Zoom(src, f, Bilinear); !errors.Is(err, ErrBadFactor) {
			t.Errorf("Zoom(%g) error = %v, want %v", f, err, ErrBadFactor)
		}
	}
	if _, err := Zoom(src, 2, Method(9)); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Zoom(Method(9)) error = %v, want %v", err, ErrUnknownMethod)
	}
}

func TestMirror(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{-1, 4, 1},
		{-2, 4, 2},
		{4, 4, 2},
		{5, 4, 1},
		{2, 4, 2},
		{3, 1, 0},
	}
	for _, tc := range tests {
		if got := mirror(tc.i, tc.n); got != tc.want {
			t.Errorf("mirror(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}
