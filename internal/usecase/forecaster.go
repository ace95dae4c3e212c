package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
	domservice "BasketNa/internal/domain/service"
	"BasketNa/internal/service/forecast"
	pkgcache "BasketNa/pkg/cache"
)

// ErrProductNotFound means the product id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientHistory is re-exported so handlers depend on one package.
var ErrInsufficientHistory = forecast.ErrInsufficientHistory

// Forecaster answers catalog, search, forecast, and analysis queries.
type Forecaster struct {
	catalog  domrepo.Catalog
	prices   domrepo.PriceStore
	engine   domservice.Forecaster
	deals    domservice.DealClassifier
	links    domservice.LinkBuilder
	cache    pkgcache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
}

func NewForecaster(
	catalog domrepo.Catalog,
	prices domrepo.PriceStore,
	engine domservice.Forecaster,
	classifier domservice.DealClassifier,
	builder domservice.LinkBuilder,
	cacheSvc pkgcache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
) *Forecaster {
	return &Forecaster{
		catalog:  catalog,
		prices:   prices,
		engine:   engine,
		deals:    classifier,
		links:    builder,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
	}
}

// Products lists the catalog.
func (f *Forecaster) Products(ctx context.Context) []models.Product {
	return f.catalog.List()
}

// Search matches the catalog and attaches latest per-retailer quotes.
func (f *Forecaster) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	products := f.catalog.Search(query)
	out := make([]models.SearchResult, 0, len(products))
	for _, p := range products {
		quotes, err := f.prices.LatestQuotes(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("latest quotes for %s: %w", p.ID, err)
		}
		for i := range quotes {
			quotes[i].URL = f.links.Build(p.Name, quotes[i].Retailer)
		}
		ranked, _, _ := f.deals.RankQuotes(quotes)
		res := models.SearchResult{Product: p, Quotes: ranked}
		if len(ranked) > 0 {
			res.Best = &ranked[0]
		}
		out = append(out, res)
	}
	return out, nil
}

// Forecast builds the full forecast response for one product.
func (f *Forecaster) Forecast(ctx context.Context, productID string, retailer models.Retailer, horizon int) (*models.Forecast, error) {
	product, ok := f.catalog.Get(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	horizon = domrepo.ClampHorizon(horizon)

	key := pkgcache.GenerateKeyWithParams("forecast", productID, string(retailer), horizon)
	if f.cache != nil {
		var cached models.Forecast
		if err := f.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	history, err := f.prices.History(ctx, productID, retailer, domrepo.MaxHorizonDays)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", productID, err)
	}
	points, err := f.engine.Forecast(history, horizon)
	if err != nil {
		return nil, err
	}

	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}
	current := prices[len(prices)-1]

	result := &models.Forecast{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Retailer:     retailer,
		CurrentPrice: current,
		History:      history,
		Points:       points,
		Deal:         f.deals.IsGreatDeal(current, prices, points[0].Lower),
		Trend:        f.deals.ClassifyTrend(prices),
		GeneratedAt:  time.Now().UTC(),
	}

	if f.cache != nil {
		_ = f.cache.Set(ctx, key, result, f.cacheTTL)
	}
	f.metrics.RecordForecast(productID)
	return result, nil
}

// Compare ranks the latest per-retailer prices for one product.
func (f *Forecaster) Compare(ctx context.Context, productID string) (*models.Comparison, error) {
	product, ok := f.catalog.Get(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	quotes, err := f.prices.LatestQuotes(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("latest quotes for %s: %w", productID, err)
	}
	for i := range quotes {
		quotes[i].URL = f.links.Build(product.Name, quotes[i].Retailer)
	}
	ranked, savings, pct := f.deals.RankQuotes(quotes)

	cmp := &models.Comparison{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quotes:      ranked,
		Savings:     savings,
		SavingsPct:  pct,
	}
	if len(ranked) > 0 {
		cmp.Best = &ranked[0]
	}
	return cmp, nil
}

// Competitive forecasts every retailer series and compares outlooks.
func (f *Forecaster) Competitive(ctx context.Context, productID string, horizon int) (*models.CompetitiveAnalysis, error) {
	product, ok := f.catalog.Get(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	horizon = domrepo.ClampHorizon(horizon)

	analysis := &models.CompetitiveAnalysis{
		ProductID:   product.ID,
		ProductName: product.Name,
		Day:         time.Now().UTC().Truncate(24 * time.Hour),
	}
	var bestCurrent, bestForecast float64
	for _, retailer := range models.KnownRetailers() {
		history, err := f.prices.History(ctx, productID, retailer, domrepo.MaxHorizonDays)
		if err != nil {
			return nil, fmt.Errorf("history for %s at %s: %w", productID, retailer, err)
		}
		if len(history) == 0 {
			continue
		}
		current := history[len(history)-1].Price
		outlook := models.RetailerOutlook{Retailer: retailer, CurrentPrice: current}

		points, err := f.engine.Forecast(history, horizon)
		if err == nil {
			min, max, sum := points[0].Predicted, points[0].Predicted, 0.0
			for _, pt := range points {
				if pt.Predicted < min {
					min = pt.Predicted
				}
				if pt.Predicted > max {
					max = pt.Predicted
				}
				sum += pt.Predicted
			}
			outlook.ForecastMin = min
			outlook.ForecastMax = max
			outlook.ForecastAvg = sum / float64(len(points))
			if current > 0 {
				outlook.ExpectedChangePct = (outlook.ForecastAvg - current) / current * 100
			}
		} else if !errors.Is(err, forecast.ErrInsufficientHistory) {
			return nil, err
		}

		analysis.Retailers = append(analysis.Retailers, outlook)
		if analysis.BestCurrent == "" || current < bestCurrent {
			analysis.BestCurrent = retailer
			bestCurrent = current
		}
		if outlook.ForecastAvg > 0 && (analysis.BestForecast == "" || outlook.ForecastAvg < bestForecast) {
			analysis.BestForecast = retailer
			bestForecast = outlook.ForecastAvg
		}
	}
	if len(analysis.Retailers) == 0 {
		return nil, ErrInsufficientHistory
	}
	return analysis, nil
}

// TrendAnalysis summarizes the recent direction of a product's prices.
func (f *Forecaster) TrendAnalysis(ctx context.Context, productID string, daysBack int) (*models.TrendAnalysis, error) {
	if _, ok := f.catalog.Get(productID); !ok {
		return nil, ErrProductNotFound
	}
	history, err := f.prices.History(ctx, productID, "", daysBack)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", productID, err)
	}
	if len(history) < 2 {
		return nil, ErrInsufficientHistory
	}

	prices := make([]float64, len(history))
	min, max, sum := history[0].Price, history[0].Price, 0.0
	for i, p := range history {
		prices[i] = p.Price
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
		sum += p.Price
	}
	first, last := prices[0], prices[len(prices)-1]

	analysis := &models.TrendAnalysis{
		ProductID:  productID,
		DaysBack:   daysBack,
		Trend:      f.deals.ClassifyTrend(prices),
		Volatility: forecast.Volatility(prices),
		MinPrice:   min,
		MaxPrice:   max,
		AvgPrice:   sum / float64(len(prices)),
		LastPrice:  last,
	}
	if first > 0 {
		analysis.ChangePct = (last - first) / first * 100
	}
	return analysis, nil
}
