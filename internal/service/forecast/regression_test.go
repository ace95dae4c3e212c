package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitOLSRecoversLine(t *testing.T) {
	// y = 3 + 2t
	var x [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		x = append(x, []float64{1, float64(i)})
		y = append(y, 3+2*float64(i))
	}
	coef, err := fitOLS(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3, coef[0], 1e-3)
	assert.InDelta(t, 2, coef[1], 1e-3)
}

func TestFitOLSCollinearColumns(t *testing.T) {
	// second and third columns are identical, the ridge must keep the
	// system solvable and predictions exact
	var x [][]float64
	var y []float64
	for i := 0; i < 15; i++ {
		x = append(x, []float64{1, float64(i), float64(i)})
		y = append(y, 10+4*float64(i))
	}
	coef, err := fitOLS(x, y)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, y[i], dot(coef, x[i]), 1e-2)
	}
}

func TestFitOLSShapeMismatch(t *testing.T) {
	_, err := fitOLS([][]float64{{1, 2}}, []float64{1, 2})
	assert.Error(t, err)
}

func TestSolvePivoting(t *testing.T) {
	// leading zero forces a row swap
	a := [][]float64{
		{0, 2},
		{1, 1},
	}
	b := []float64{4, 3}
	got, err := solve(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1, got[0], 1e-9)
	assert.InDelta(t, 2, got[1], 1e-9)
}
