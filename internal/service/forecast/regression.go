package forecast

import (
	"errors"
	"math"
)

var errSingular = errors.New("singular design matrix")

// fitOLS solves the normal equations (X'X)b = X'y with partial-pivot
// Gaussian elimination and returns the coefficient vector.
func fitOLS(x [][]float64, y []float64) ([]float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("shape mismatch")
	}
	k := len(x[0])

	// X'X and X'y
	a := make([][]float64, k)
	b := make([]float64, k)
	for i := 0; i < k; i++ {
		a[i] = make([]float64, k)
	}
	for r := range x {
		for i := 0; i < k; i++ {
			b[i] += x[r][i] * y[r]
			for j := i; j < k; j++ {
				a[i][j] += x[r][i] * x[r][j]
			}
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			a[i][j] = a[j][i]
		}
	}

	// Calendar features can be collinear on contiguous daily series
	// (ordinal index vs day-of-year). A tiny ridge keeps the system
	// solvable without visibly moving the fit.
	var trace float64
	for i := 0; i < k; i++ {
		trace += a[i][i]
	}
	lambda := 1e-8 * trace / float64(k)
	if lambda <= 0 {
		lambda = 1e-8
	}
	for i := 0; i < k; i++ {
		a[i][i] += lambda
	}

	return solve(a, b)
}

// solve performs in-place Gaussian elimination with partial pivoting.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		// pick the largest pivot in this column
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	out := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * out[j]
		}
		out[i] = sum / a[i][i]
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
