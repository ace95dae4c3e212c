package models

import "time"

// RecommendationCandidate is one scored product suggestion.
type RecommendationCandidate struct {
	ProductID        string              `json:"product_id"`
	ProductName      string              `json:"product_name"`
	Category         string              `json:"category"`
	CurrentPrice     float64             `json:"current_price"`
	BestRetailer     Retailer            `json:"best_retailer,omitempty"`
	Rating           float64             `json:"rating"`
	TrendingScore    float64             `json:"trending_score"`
	PriceTrend       Trend               `json:"price_trend"`
	PotentialSavings float64             `json:"potential_savings"`
	Score            float64             `json:"score"`
	Reasons          []string            `json:"reasons,omitempty"`
	Links            map[Retailer]string `json:"links,omitempty"`
}

// RecommendationSet is a ranked response for one identity.
type RecommendationSet struct {
	UserID               string                    `json:"user_id,omitempty"`
	SessionID            string                    `json:"session_id,omitempty"`
	Recommendations      []RecommendationCandidate `json:"recommendations"`
	TotalCount           int                       `json:"total_count"`
	PersonalizationScore float64                   `json:"personalization_score"`
	GeneratedAt          time.Time                 `json:"generated_at"`
}

// ActivityPatterns aggregates one identity's recent behavior for scoring.
type ActivityPatterns struct {
	ViewCounts    map[string]int64 // product id -> views
	CategoryViews map[string]int64 // category -> views
	Tracked       []string         // tracked product ids
}

// TotalViews sums all product views.
func (p *ActivityPatterns) TotalViews() int64 {
	var n int64
	for _, v := range p.ViewCounts {
		n += v
	}
	return n
}

// ActivityScore maps raw engagement onto [0,1].
func (p *ActivityPatterns) ActivityScore() float64 {
	raw := float64(p.TotalViews()) + 2*float64(len(p.Tracked)) + 0.5*float64(len(p.ViewCounts))
	score := raw / 30
	if score > 1 {
		return 1
	}
	return score
}

// ViewEvent is one product page view attributed to a user or session.
type ViewEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	ProductID string    `json:"product_id"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"ts"`
}

// TrackedItem is a product a user follows for price alerts.
type TrackedItem struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an anonymous browsing identity.
type Session struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
