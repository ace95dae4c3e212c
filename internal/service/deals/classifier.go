package deals

import (
	"math"
	"sort"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
)

const (
	// Relative short/long mean difference below this is a stable trend.
	trendThreshold = 0.02
	// Deal rule thresholds.
	dealPercentile   = 10.0
	dealMeanDiscount = 0.15
)

// Classifier labels price trends and flags great deals.
type Classifier struct{}

func New() *Classifier { return &Classifier{} }

// ClassifyTrend compares the trailing short-window mean against the
// long-window mean. The comparison is relative, so the result does not
// change when all prices are scaled by the same factor.
func (c *Classifier) ClassifyTrend(prices []float64) models.Trend {
	if len(prices) < 2 {
		return models.TrendStable
	}
	short := mean(tail(prices, domrepo.ShortWindowDays))
	long := mean(tail(prices, domrepo.LongWindowDays))
	if long == 0 {
		return models.TrendStable
	}
	diff := (short - long) / long
	switch {
	case diff > trendThreshold:
		return models.TrendIncreasing
	case diff < -trendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// IsGreatDeal fires when the current price clears any of three rules:
// bottom decile of the trailing window, 15% below the trailing mean, or
// below the forecast lower bound (pass 0 when no forecast is available).
// Every rule is a one-sided comparison, so lowering the current price
// never un-fires the signal.
func (c *Classifier) IsGreatDeal(current float64, history []float64, forecastLower float64) models.DealSignal {
	if len(history) < 2 {
		return models.DealSignal{Reasons: []string{"not enough price history"}}
	}

	window := tail(history, domrepo.LongWindowDays)
	var reasons []string
	if current <= percentile(window, dealPercentile) {
		reasons = append(reasons, "price is in the bottom 10% of the recent range")
	}
	if m := mean(window); m > 0 && current <= m*(1-dealMeanDiscount) {
		reasons = append(reasons, "price is at least 15% below the 30-day average")
	}
	if forecastLower > 0 && current < forecastLower {
		reasons = append(reasons, "price is below the forecast lower bound")
	}

	return models.DealSignal{GreatDeal: len(reasons) > 0, Reasons: reasons}
}

// RankQuotes sorts quotes by price ascending and returns the savings of
// the best quote against the second best. Fewer than two quotes means
// zero savings.
func (c *Classifier) RankQuotes(quotes []models.RetailerQuote) ([]models.RetailerQuote, float64, float64) {
	out := make([]models.RetailerQuote, len(quotes))
	copy(out, quotes)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Retailer < out[j].Retailer
	})

	if len(out) < 2 {
		return out, 0, 0
	}
	savings := out[1].Price - out[0].Price
	var pct float64
	if out[1].Price > 0 {
		pct = savings / out[1].Price * 100
	}
	return out, savings, pct
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentile interpolates linearly between order statistics.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	if len(s) == 1 {
		return s[0]
	}
	rank := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return s[lo]
	}
	frac := rank - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}
