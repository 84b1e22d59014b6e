package binning

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// truncate bounds the kernel at this many standard deviations.
const truncate = 4.0

// Smooth applies a separable Gaussian filter to grid and returns a new matrix.
// Borders are mirrored (d c b a | a b c d | d c b a) so the grid total is
// preserved.
func Smooth(grid *mat.Dense, sigma float64) *mat.Dense {
	rows, cols := grid.Dims()
	out := mat.DenseCopyOf(grid)
	if sigma <= 0 {
		return out
	}
	kernel := gaussianKernel(sigma)

	buf := make([]float64, 0, max(rows, cols))
	// Along the length.
	for c := 0; c < cols; c++ {
		buf = mat.Col(buf[:rows], c, out)
		out.SetCol(c, correlate(buf, kernel))
	}
	// Along the width.
	for r := 0; r < rows; r++ {
		buf = mat.Row(buf[:cols], r, out)
		out.SetRow(r, correlate(buf, kernel))
	}
	return out
}

// gaussianKernel returns a normalized kernel of radius int(truncate*sigma+0.5).
func gaussianKernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

func correlate(in, kernel []float64) []float64 {
	n := len(in)
	radius := len(kernel) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for j, w := range kernel {
			acc += w * in[reflectIndex(i+j-radius, n)]
		}
		out[i] = acc
	}
	return out
}

// reflectIndex folds i back into [0, n) by mirroring about the edges,
// repeating the edge sample.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
