package deals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BasketNa/internal/domain/models"
)

func flatSeries(n int, price float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = price
	}
	return s
}

func TestClassifyTrendStableOnFlatSeries(t *testing.T) {
	c := New()
	assert.Equal(t, models.TrendStable, c.ClassifyTrend(flatSeries(30, 100)))
}

func TestClassifyTrendDirections(t *testing.T) {
	c := New()

	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)*2
	}
	assert.Equal(t, models.TrendIncreasing, c.ClassifyTrend(rising))

	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 160 - float64(i)*2
	}
	assert.Equal(t, models.TrendDecreasing, c.ClassifyTrend(falling))
}

func TestClassifyTrendScaleInvariant(t *testing.T) {
	c := New()
	base := []float64{100, 101, 99, 100, 102, 98, 100, 97, 96, 95, 94, 93, 92, 91}
	scaled := make([]float64, len(base))
	for i, v := range base {
		scaled[i] = v * 1000
	}
	assert.Equal(t, c.ClassifyTrend(base), c.ClassifyTrend(scaled))
}

func TestClassifyTrendShortSeries(t *testing.T) {
	c := New()
	assert.Equal(t, models.TrendStable, c.ClassifyTrend([]float64{100}))
	assert.Equal(t, models.TrendStable, c.ClassifyTrend(nil))
}

func TestIsGreatDealFlatHistoryDeepDrop(t *testing.T) {
	c := New()
	sig := c.IsGreatDeal(70, flatSeries(30, 100), 0)
	assert.True(t, sig.GreatDeal)
	assert.NotEmpty(t, sig.Reasons)
}

func TestIsGreatDealNotFiredAtAverage(t *testing.T) {
	c := New()
	history := []float64{100, 102, 98, 101, 99, 100, 103, 97, 100, 101}
	sig := c.IsGreatDeal(100, history, 0)
	assert.False(t, sig.GreatDeal)
}

func TestIsGreatDealMonotonicInCurrent(t *testing.T) {
	c := New()
	history := []float64{100, 102, 98, 101, 99, 100, 103, 97, 100, 101}
	for price := 120.0; price > 10; price -= 5 {
		if c.IsGreatDeal(price, history, 0).GreatDeal {
			// once fired, every lower price must also fire
			for lower := price; lower > 0; lower -= 5 {
				assert.True(t, c.IsGreatDeal(lower, history, 0).GreatDeal)
			}
			return
		}
	}
	t.Fatal("deal never fired")
}

func TestIsGreatDealBelowForecastLower(t *testing.T) {
	c := New()
	history := []float64{100, 100, 100}
	sig := c.IsGreatDeal(95, history, 96)
	assert.True(t, sig.GreatDeal)
	assert.Contains(t, sig.Reasons, "price is below the forecast lower bound")
}

func TestIsGreatDealInsufficientHistory(t *testing.T) {
	c := New()
	sig := c.IsGreatDeal(50, []float64{100}, 0)
	assert.False(t, sig.GreatDeal)
	assert.Contains(t, sig.Reasons, "not enough price history")
}

func TestRankQuotes(t *testing.T) {
	c := New()
	quotes := []models.RetailerQuote{
		{Retailer: models.RetailerAmazon, Price: 950},
		{Retailer: models.RetailerFlipkart, Price: 930},
		{Retailer: models.RetailerCroma, Price: 960},
	}
	ranked, savings, pct := c.RankQuotes(quotes)
	assert.Equal(t, models.RetailerFlipkart, ranked[0].Retailer)
	assert.InDelta(t, 20, savings, 1e-9)
	assert.InDelta(t, 20.0/950*100, pct, 1e-9)
}

func TestRankQuotesSingleRetailer(t *testing.T) {
	c := New()
	ranked, savings, pct := c.RankQuotes([]models.RetailerQuote{{Retailer: models.RetailerAmazon, Price: 950}})
	assert.Len(t, ranked, 1)
	assert.Zero(t, savings)
	assert.Zero(t, pct)
}
