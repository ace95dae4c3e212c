package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
)

func series(start time.Time, prices []float64) []models.PricePoint {
	out := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = models.PricePoint{Day: start.AddDate(0, 0, i), Price: p}
	}
	return out
}

func linearPrices(n int, base, slope float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + slope*float64(i)
	}
	return out
}

func TestForecastRejectsShortHistory(t *testing.T) {
	e := New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Forecast(series(start, linearPrices(6, 100, 0)), 30)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestForecastDatesContiguous(t *testing.T) {
	e := New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	hist := series(start, linearPrices(40, 50000, -20))

	points, err := e.Forecast(hist, 30)
	require.NoError(t, err)
	require.Len(t, points, 30)

	next := hist[len(hist)-1].Day.AddDate(0, 0, 1)
	for i, p := range points {
		assert.Equal(t, next.AddDate(0, 0, i), p.Day)
	}
}

func TestForecastBandOrderingAndConfidence(t *testing.T) {
	e := New()
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	prices := linearPrices(60, 30000, 15)
	// add a little texture so sigma is non-zero
	for i := range prices {
		if i%3 == 0 {
			prices[i] *= 1.01
		}
	}
	points, err := e.Forecast(series(start, prices), 45)
	require.NoError(t, err)

	prev := 1.0
	for i, p := range points {
		assert.LessOrEqual(t, p.Lower, p.Predicted, "point %d", i)
		assert.LessOrEqual(t, p.Predicted, p.Upper, "point %d", i)
		assert.GreaterOrEqual(t, p.Confidence, 0.5)
		assert.LessOrEqual(t, p.Confidence, 1.0)
		assert.LessOrEqual(t, p.Confidence, prev, "confidence must not increase")
		prev = p.Confidence
	}
}

func TestForecastBandWidens(t *testing.T) {
	e := New()
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	prices := linearPrices(30, 1000, 1)
	for i := range prices {
		if i%2 == 0 {
			prices[i] += 8
		}
	}
	points, err := e.Forecast(series(start, prices), 30)
	require.NoError(t, err)

	first := points[0].Upper - points[0].Lower
	last := points[len(points)-1].Upper - points[len(points)-1].Lower
	assert.Greater(t, last, first)
}

func TestForecastFlatSeriesStaysClose(t *testing.T) {
	e := New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	points, err := e.Forecast(series(start, linearPrices(30, 100, 0)), 10)
	require.NoError(t, err)
	for _, p := range points {
		assert.InDelta(t, 100, p.Predicted, 5)
	}
}

func TestForecastHorizonClamped(t *testing.T) {
	e := New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	hist := series(start, linearPrices(20, 100, 0))

	points, err := e.Forecast(hist, 500)
	require.NoError(t, err)
	assert.Len(t, points, 90)

	points, err = e.Forecast(hist, 0)
	require.NoError(t, err)
	assert.Len(t, points, 30)
}

func TestGrowthEndpoints(t *testing.T) {
	assert.InDelta(t, 1.0, growth(1, 30), 1e-9)
	assert.InDelta(t, 1.5, growth(30, 30), 1e-9)
	assert.InDelta(t, 1.0, growth(1, 1), 1e-9)
}

func TestVolatility(t *testing.T) {
	assert.Zero(t, Volatility([]float64{100}))
	assert.Zero(t, Volatility(linearPrices(14, 100, 0)))

	v := Volatility([]float64{100, 110, 90, 105, 95, 100, 108, 92, 101, 99, 103, 97, 104, 96})
	assert.Greater(t, v, 0.0)
	assert.False(t, math.IsNaN(v))
}
