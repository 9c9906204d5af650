package resample

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// pole of the cubic B-spline prefilter.
var pole = math.Sqrt(3) - 2

// splineCoefficients returns the cubic B-spline coefficients of src,
// filtering rows then columns with mirror boundaries.
func splineCoefficients(src mat.Matrix) *mat.Dense {
	rows, cols := src.Dims()
	coef := mat.DenseCopyOf(src)
	line := make([]float64, max(rows, cols))
	for i := 0; i < rows; i++ {
		l := line[:cols]
		mat.Row(l, i, coef)
		filterLine(l)
		coef.SetRow(i, l)
	}
	for j := 0; j < cols; j++ {
		l := line[:rows]
		mat.Col(l, j, coef)
		filterLine(l)
		coef.SetCol(j, l)
	}
	return coef
}

// filterLine converts samples to interpolating B-spline coefficients in
// place (recursive causal and anti-causal passes).
func filterLine(c []float64) {
	n := len(c)
	if n < 2 {
		return
	}
	z := pole
	gain := (1 - z) * (1 - 1/z)
	for i := range c {
		c[i] *= gain
	}
	c[0] = causalInit(c, z)
	for i := 1; i < n; i++ {
		c[i] += z * c[i-1]
	}
	c[n-1] = (z / (z*z - 1)) * (z*c[n-2] + c[n-1])
	for i := n - 2; i >= 0; i-- {
		c[i] = z * (c[i+1] - c[i])
	}
}

func causalInit(c []float64, z float64) float64 {
	n := len(c)
	horizon := int(math.Ceil(math.Log(1e-15) / math.Log(math.Abs(z))))
	if horizon < n {
		sum, zk := 0.0, 1.0
		for k := 0; k < horizon; k++ {
			sum += zk * c[k]
			zk *= z
		}
		return sum
	}
	zn := math.Pow(z, float64(n-1))
	z2n := zn * zn
	sum := c[0] + zn*c[n-1]
	zk := z
	for k := 1; k < n-1; k++ {
		sum += (zk + z2n/zk) * c[k]
		zk *= z
	}
	return sum / (1 - z2n)
}

// mirror folds an index into [0, n) by reflecting about the end samples.
func mirror(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2*n - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

func bsplineWeights(t float64) [4]float64 {
	u := 1 - t
	t2, t3 := t*t, t*t*t
	return [4]float64{
		u * u * u / 6,
		(4 - 6*t2 + 3*t3) / 6,
		(1 + 3*t + 3*t2 - 3*t3) / 6,
		t3 / 6,
	}
}

func cubic(coef *mat.Dense) func(y, x float64) float64 {
	rows, cols := coef.Dims()
	return func(y, x float64) float64 {
		r0, c0 := int(math.Floor(y)), int(math.Floor(x))
		wy := bsplineWeights(y - float64(r0))
		wx := bsplineWeights(x - float64(c0))
		var sum float64
		for a := 0; a < 4; a++ {
			r := mirror(r0-1+a, rows)
			var row float64
			for b := 0; b < 4; b++ {
				row += wx[b] * coef.At(r, mirror(c0-1+b, cols))
			}
			sum += wy[a] * row
		}
		return sum
	}
}
