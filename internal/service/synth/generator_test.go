package synth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
)

var testProduct = models.Product{
	ID:        "P001",
	Name:      "iPhone 16",
	Category:  "Smartphones",
	BasePrice: 79900,
}

func TestSeriesDeterministicForSeed(t *testing.T) {
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := NewGenerator(42).Series(testProduct, models.RetailerAmazon, end, 90)
	b := NewGenerator(42).Series(testProduct, models.RetailerAmazon, end, 90)
	assert.Equal(t, a, b)

	c := NewGenerator(7).Series(testProduct, models.RetailerAmazon, end, 90)
	assert.NotEqual(t, a, c)
}

func TestSeriesLengthAndOrdering(t *testing.T) {
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := NewGenerator(1).Series(testProduct, models.RetailerFlipkart, end, 30)
	require.Len(t, got, 30)
	assert.Equal(t, end, got[len(got)-1].Day)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].Day.AddDate(0, 0, 1), got[i].Day)
	}
}

func TestSeriesRespectsFloorAndDeltaCap(t *testing.T) {
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, r := range models.KnownRetailers() {
		got := NewGenerator(99).Series(testProduct, r, end, 120)
		floor := testProduct.BasePrice * floorFraction
		for i, p := range got {
			assert.GreaterOrEqual(t, p.Price, floor, "retailer %s day %d", r, i)
			if i > 0 {
				prev := got[i-1].Price
				assert.LessOrEqual(t, p.Price, prev*(1+maxDailyDelta)+0.01)
				assert.GreaterOrEqual(t, p.Price, prev*(1-maxDailyDelta)-0.01)
			}
		}
	}
}

func TestSeriesRetailersDiffer(t *testing.T) {
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(42)
	amazon := g.Series(testProduct, models.RetailerAmazon, end, 30)
	flipkart := g.Series(testProduct, models.RetailerFlipkart, end, 30)
	assert.NotEqual(t, amazon[0].Price, flipkart[0].Price)
}

func TestNextStaysWithinBounds(t *testing.T) {
	g := NewGenerator(5)
	rng := rand.New(rand.NewSource(5))
	prev := 0.0
	for i := 0; i < 200; i++ {
		next := g.Next(rng, testProduct, models.RetailerCroma, prev)
		assert.GreaterOrEqual(t, next, testProduct.BasePrice*floorFraction)
		if prev > 0 {
			assert.LessOrEqual(t, next, prev*(1+maxDailyDelta)+0.01)
		}
		prev = next
	}
}
