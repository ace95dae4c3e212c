package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
	internalrepo "BasketNa/internal/repository"
	"BasketNa/internal/service/deals"
	"BasketNa/internal/service/forecast"
	"BasketNa/internal/service/links"
	pkgcache "BasketNa/pkg/cache"
)

var testProducts = []models.Product{
	{ID: "P001", Name: "iPhone 16", Category: "Smartphones", BasePrice: 79900, Rating: 4.6},
	{ID: "P002", Name: "Galaxy S25", Category: "Smartphones", BasePrice: 74999, Rating: 4.4},
	{ID: "P003", Name: "Sony WH-1000XM5", Category: "Headphones", BasePrice: 29990, Rating: 4.7},
}

func newTestForecaster(store *fakePriceStore, cacheSvc pkgcache.Service, m *fakeMetrics) *Forecaster {
	return NewForecaster(
		internalrepo.NewStaticCatalogWith(testProducts),
		store,
		forecast.New(),
		deals.New(),
		links.New(),
		cacheSvc,
		time.Minute,
		m,
	)
}

func driftSeries(start float64, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestForecastUnknownProduct(t *testing.T) {
	f := newTestForecaster(newFakePriceStore(), nil, newFakeMetrics())

	_, err := f.Forecast(context.Background(), "P999", models.RetailerAmazon, 14)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestForecastInsufficientHistory(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P001", models.RetailerAmazon, 100, 101, 102)
	f := newTestForecaster(store, nil, newFakeMetrics())

	_, err := f.Forecast(context.Background(), "P001", models.RetailerAmazon, 14)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestForecastHappyPath(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P001", models.RetailerAmazon, driftSeries(1000, -2, 30)...)
	metrics := newFakeMetrics()
	f := newTestForecaster(store, nil, metrics)

	res, err := f.Forecast(context.Background(), "P001", models.RetailerAmazon, 14)
	require.NoError(t, err)

	assert.Equal(t, "P001", res.ProductID)
	assert.Equal(t, "iPhone 16", res.ProductName)
	assert.InDelta(t, 1000-2*29, res.CurrentPrice, 1e-9)
	require.Len(t, res.Points, 14)
	for _, pt := range res.Points {
		assert.LessOrEqual(t, pt.Lower, pt.Predicted)
		assert.LessOrEqual(t, pt.Predicted, pt.Upper)
		assert.Positive(t, pt.Confidence)
	}
	assert.Equal(t, models.TrendDecreasing, res.Trend)
	assert.Equal(t, 1, metrics.count("forecast"))
}

func TestForecastServedFromCache(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P001", models.RetailerAmazon, driftSeries(1000, 1, 30)...)
	metrics := newFakeMetrics()
	f := newTestForecaster(store, pkgcache.NewMemoryCache(), metrics)

	first, err := f.Forecast(context.Background(), "P001", models.RetailerAmazon, 14)
	require.NoError(t, err)

	// change the underlying series; a cache hit must not see it
	store.seed("P001", models.RetailerAmazon, driftSeries(500, 1, 30)...)

	second, err := f.Forecast(context.Background(), "P001", models.RetailerAmazon, 14)
	require.NoError(t, err)
	assert.Equal(t, first.CurrentPrice, second.CurrentPrice)
	assert.Equal(t, 1, metrics.count("forecast"))
}

func TestCompareRanksQuotes(t *testing.T) {
	store := newFakePriceStore()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store.quotes["P001"] = []models.RetailerQuote{
		{Retailer: models.RetailerAmazon, Price: 100, Day: day},
		{Retailer: models.RetailerFlipkart, Price: 90, Day: day},
		{Retailer: models.RetailerCroma, Price: 95, Day: day},
	}
	f := newTestForecaster(store, nil, newFakeMetrics())

	cmp, err := f.Compare(context.Background(), "P001")
	require.NoError(t, err)

	require.NotNil(t, cmp.Best)
	assert.Equal(t, models.RetailerFlipkart, cmp.Best.Retailer)
	assert.InDelta(t, 5, cmp.Savings, 1e-9)
	assert.InDelta(t, 5.0/95*100, cmp.SavingsPct, 1e-9)
	for _, q := range cmp.Quotes {
		assert.NotEmpty(t, q.URL)
	}
}

func TestTrendAnalysisDecreasing(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P002", "", driftSeries(1000, -5, 30)...)
	f := newTestForecaster(store, nil, newFakeMetrics())

	res, err := f.TrendAnalysis(context.Background(), "P002", 30)
	require.NoError(t, err)

	assert.Equal(t, models.TrendDecreasing, res.Trend)
	assert.Negative(t, res.ChangePct)
	assert.InDelta(t, 1000, res.MaxPrice, 1e-9)
	assert.InDelta(t, 1000-5*29, res.MinPrice, 1e-9)
	assert.Equal(t, res.MinPrice, res.LastPrice)
}

func TestTrendAnalysisNeedsTwoPoints(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P002", "", 999)
	f := newTestForecaster(store, nil, newFakeMetrics())

	_, err := f.TrendAnalysis(context.Background(), "P002", 30)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestSearchAttachesBestQuote(t *testing.T) {
	store := newFakePriceStore()
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store.quotes["P001"] = []models.RetailerQuote{
		{Retailer: models.RetailerAmazon, Price: 79900, Day: day},
		{Retailer: models.RetailerFlipkart, Price: 78500, Day: day},
	}
	f := newTestForecaster(store, nil, newFakeMetrics())

	results, err := f.Search(context.Background(), "iphone")
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Best)
	assert.Equal(t, models.RetailerFlipkart, results[0].Best.Retailer)
}
