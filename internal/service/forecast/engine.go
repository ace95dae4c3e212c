package forecast

import (
	"errors"
	"math"
	"time"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
)

// ErrInsufficientHistory means the series is too short to fit a model.
var ErrInsufficientHistory = errors.New("insufficient price history")

const (
	// MinHistoryPoints is the shortest series the engine accepts.
	MinHistoryPoints = 7

	zScore = 1.96
	// Band half-width grows linearly to this factor at the horizon end.
	maxUncertaintyGrowth = 1.5
	// Confidence decays per day ahead, floored at 0.5.
	confidenceDecay = 0.015
	confidenceFloor = 0.5

	volatilityWindowDays = 14
	// History drops steeper than this mark observed sale days.
	saleDropThreshold = 0.10
)

// Engine fits a least-squares model over calendar features and emits a
// daily forecast with a widening confidence band.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Forecast predicts horizon daily prices following the last history day.
// History must be ordered by day ascending.
func (e *Engine) Forecast(history []models.PricePoint, horizon int) ([]models.ForecastPoint, error) {
	if len(history) < MinHistoryPoints {
		return nil, ErrInsufficientHistory
	}
	horizon = domrepo.ClampHorizon(horizon)

	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}

	x := make([][]float64, len(history))
	for i, p := range history {
		dropped := i > 0 && prices[i] < prices[i-1]*(1-saleDropThreshold)
		x[i] = featureRow(i, p.Day, dropped)
	}

	coef, err := fitOLS(x, prices)
	sigma := residualSigma(x, prices, coef, err)

	lastDay := history[len(history)-1].Day
	out := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		day := lastDay.AddDate(0, 0, i)
		var predicted float64
		if err == nil {
			predicted = dot(coef, featureRow(len(history)-1+i, day, false))
		} else {
			// degenerate series, fall back to the trailing mean
			predicted = meanOf(tailOf(prices, domrepo.ShortWindowDays))
		}
		if predicted < 0 {
			predicted = 0
		}

		half := zScore * sigma * growth(i, horizon)
		lower := predicted - half
		if lower < 0 {
			lower = 0
		}
		confidence := 1 - confidenceDecay*float64(i)
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}

		out = append(out, models.ForecastPoint{
			Day:        day,
			Predicted:  predicted,
			Lower:      lower,
			Upper:      predicted + half,
			Confidence: confidence,
		})
	}
	return out, nil
}

// residualSigma estimates band width from model residuals, floored by
// realized volatility so a suspiciously tight fit still gets an honest
// band.
func residualSigma(x [][]float64, prices, coef []float64, fitErr error) float64 {
	recent := tailOf(prices, volatilityWindowDays)
	floor := pctChangeStd(recent) * meanOf(recent)
	if fitErr != nil {
		return floor
	}

	var sse float64
	for i := range x {
		r := prices[i] - dot(coef, x[i])
		sse += r * r
	}
	sigma := math.Sqrt(sse / float64(len(x)))
	if sigma < floor {
		return floor
	}
	return sigma
}

// growth interpolates the band multiplier from 1 to maxUncertaintyGrowth
// across the horizon.
func growth(i, horizon int) float64 {
	if horizon <= 1 {
		return 1
	}
	return 1 + (maxUncertaintyGrowth-1)*float64(i-1)/float64(horizon-1)
}

// pctChangeStd is the standard deviation of day-over-day relative moves.
func pctChangeStd(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	changes := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			changes = append(changes, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	if len(changes) == 0 {
		return 0
	}
	m := meanOf(changes)
	var sse float64
	for _, c := range changes {
		sse += (c - m) * (c - m)
	}
	return math.Sqrt(sse / float64(len(changes)))
}

// Volatility is the coefficient of variation of the trailing window,
// used as the trending signal upstream.
func Volatility(prices []float64) float64 {
	window := tailOf(prices, volatilityWindowDays)
	m := meanOf(window)
	if m == 0 || len(window) < 2 {
		return 0
	}
	var sse float64
	for _, p := range window {
		sse += (p - m) * (p - m)
	}
	return math.Sqrt(sse/float64(len(window))) / m
}

// NextDay returns the first forecastable day after the series end.
func NextDay(history []models.PricePoint) time.Time {
	if len(history) == 0 {
		return time.Time{}
	}
	return history[len(history)-1].Day.AddDate(0, 0, 1)
}

func tailOf(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
