package service

import (
	"BasketNa/internal/domain/models"
)

// Forecaster predicts future daily prices from an ordered history.
type Forecaster interface {
	Forecast(history []models.PricePoint, horizon int) ([]models.ForecastPoint, error)
}

// DealClassifier labels price trends, flags great deals, and ranks
// retailer quotes.
type DealClassifier interface {
	ClassifyTrend(prices []float64) models.Trend
	IsGreatDeal(current float64, history []float64, forecastLower float64) models.DealSignal
	RankQuotes(quotes []models.RetailerQuote) ([]models.RetailerQuote, float64, float64)
}

// Scorer ranks catalog products against an identity's activity.
type Scorer interface {
	Score(product models.Product, patterns *models.ActivityPatterns, trending float64, trend models.Trend) (float64, []string)
	PersonalizationScore(patterns *models.ActivityPatterns, resultCount int) float64
}

// LinkBuilder renders retailer search URLs for a product name.
type LinkBuilder interface {
	Build(productName string, retailer models.Retailer) string
	All(productName string) map[models.Retailer]string
}
