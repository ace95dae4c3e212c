package models

import "time"

// Trend labels the recent direction of a price series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ForecastPoint is one predicted day with its confidence band.
// Lower <= Predicted <= Upper always holds.
type ForecastPoint struct {
	Day        time.Time `json:"date"`
	Predicted  float64   `json:"predicted_price"`
	Lower      float64   `json:"lower_bound"`
	Upper      float64   `json:"upper_bound"`
	Confidence float64   `json:"confidence"`
}

// DealSignal is the great-deal verdict for a current price.
type DealSignal struct {
	GreatDeal bool     `json:"is_great_deal"`
	Reasons   []string `json:"reasons,omitempty"`
}

// Forecast is the full response for a forecast request.
type Forecast struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Retailer     Retailer        `json:"retailer,omitempty"`
	CurrentPrice float64         `json:"current_price"`
	History      []PricePoint    `json:"history"`
	Points       []ForecastPoint `json:"forecast"`
	Deal         DealSignal      `json:"deal"`
	Trend        Trend           `json:"trend"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// RetailerQuote is the latest observed price at one retailer.
type RetailerQuote struct {
	Retailer Retailer  `json:"retailer"`
	Price    float64   `json:"price"`
	Day      time.Time `json:"date"`
	URL      string    `json:"url,omitempty"`
}

// Comparison ranks the latest per-retailer prices for a product.
type Comparison struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quotes      []RetailerQuote `json:"quotes"`
	Best        *RetailerQuote  `json:"best,omitempty"`
	Savings     float64         `json:"savings"`
	SavingsPct  float64         `json:"savings_pct"`
}

// RetailerOutlook summarizes current and forecast prices at one retailer.
type RetailerOutlook struct {
	Retailer          Retailer `json:"retailer"`
	CurrentPrice      float64  `json:"current_price"`
	ForecastAvg       float64  `json:"forecast_avg"`
	ForecastMin       float64  `json:"forecast_min"`
	ForecastMax       float64  `json:"forecast_max"`
	ExpectedChangePct float64  `json:"expected_change_pct"`
}

// CompetitiveAnalysis compares retailer outlooks for one product.
type CompetitiveAnalysis struct {
	ProductID    string            `json:"product_id"`
	ProductName  string            `json:"product_name"`
	Day          time.Time         `json:"analysis_date"`
	Retailers    []RetailerOutlook `json:"retailers"`
	BestCurrent  Retailer          `json:"best_current,omitempty"`
	BestForecast Retailer          `json:"best_forecast,omitempty"`
}

// TrendAnalysis is the response for a trend request.
type TrendAnalysis struct {
	ProductID  string  `json:"product_id"`
	DaysBack   int     `json:"days_back"`
	Trend      Trend   `json:"trend"`
	Volatility float64 `json:"volatility"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	AvgPrice   float64 `json:"avg_price"`
	LastPrice  float64 `json:"last_price"`
	ChangePct  float64 `json:"change_pct"`
}

// SearchResult pairs a catalog hit with its latest per-retailer quotes.
type SearchResult struct {
	Product Product         `json:"product"`
	Quotes  []RetailerQuote `json:"quotes"`
	Best    *RetailerQuote  `json:"best,omitempty"`
}
