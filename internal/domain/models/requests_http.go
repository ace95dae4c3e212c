package models

// Request DTOs bound from path/query parameters. Defaults are applied
// after binding and before validation.

type SearchRequest struct {
	Query string `query:"query" validate:"required,min=2,max=128"`
}

type ForecastRequest struct {
	ProductID string `param:"product_id" validate:"required"`
	Retailer  string `query:"retailer" validate:"omitempty,oneof=Amazon.in Flipkart RelianceDigital Croma"`
	Horizon   int    `query:"horizon" default:"30" validate:"gte=1,lte=90"`
}

type CompareRequest struct {
	ProductID string `param:"product_id" validate:"required"`
}

type CompetitiveRequest struct {
	ProductID string `param:"product_id" validate:"required"`
	Horizon   int    `query:"horizon" default:"30" validate:"gte=1,lte=90"`
}

type TrendRequest struct {
	ProductID string `param:"product_id" validate:"required"`
	DaysBack  int    `query:"days" default:"30" validate:"gte=7,lte=90"`
}

type PersonalizedRecommendationsRequest struct {
	Limit int `query:"limit" default:"10" validate:"gte=1,lte=20"`
}

type SessionRecommendationsRequest struct {
	SessionID string `query:"session_id" validate:"required"`
	Limit     int    `query:"limit" default:"10" validate:"gte=1,lte=20"`
}

type CategoryRecommendationsRequest struct {
	Category string   `param:"category" validate:"required"`
	Limit    int      `query:"limit" default:"5" validate:"gte=1,lte=10"`
	Exclude  []string `query:"exclude"`
}

type TrendingRecommendationsRequest struct {
	Limit int `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

type BestDealsRequest struct {
	Limit int `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

type RecordViewRequest struct {
	ProductID string `param:"product_id" validate:"required"`
	SessionID string `query:"session_id"`
}

type TrackRequest struct {
	ProductID string `param:"product_id" validate:"required"`
}
