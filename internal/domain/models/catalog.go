package models

import "time"

// Retailer identifies a supported storefront.
type Retailer string

const (
	RetailerAmazon          Retailer = "Amazon.in"
	RetailerFlipkart        Retailer = "Flipkart"
	RetailerRelianceDigital Retailer = "RelianceDigital"
	RetailerCroma           Retailer = "Croma"
)

// KnownRetailers returns all supported retailers in a stable order.
func KnownRetailers() []Retailer {
	return []Retailer{RetailerAmazon, RetailerFlipkart, RetailerRelianceDigital, RetailerCroma}
}

// IsValidRetailer returns true if r is a supported retailer.
func IsValidRetailer(r Retailer) bool {
	switch r {
	case RetailerAmazon, RetailerFlipkart, RetailerRelianceDigital, RetailerCroma:
		return true
	default:
		return false
	}
}

// Product is a catalog entry. Ratings are review-derived and static for now.
type Product struct {
	ID          string  `json:"product_id"`
	Name        string  `json:"product_name"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"base_price"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
}

// PricePoint is one observed daily price for a (product, retailer) series.
// Day is truncated to UTC midnight; a series holds at most one point per day.
type PricePoint struct {
	Day      time.Time `json:"date"`
	Retailer Retailer  `json:"retailer,omitempty"`
	Price    float64   `json:"price"`
}

// PriceTick is the streaming ingest unit before daily aggregation.
type PriceTick struct {
	ProductID string   `json:"product_id"`
	Retailer  Retailer `json:"retailer"`
	Price     float64  `json:"price"`
	Timestamp int64    `json:"ts"` // unix seconds
}

// Day returns the calendar day of the tick in UTC.
func (t *PriceTick) Day() time.Time {
	return time.Unix(t.Timestamp, 0).UTC().Truncate(24 * time.Hour)
}
