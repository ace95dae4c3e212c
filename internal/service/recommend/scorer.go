package recommend

import (
	"sort"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/service/forecast"
)

const (
	baseScore          = 0.1
	maxAffinity        = 0.4
	maxRatingBoost     = 0.4
	trendingWeight     = 0.2
	decreasingBonus    = 0.15
	stableBonus        = 0.05
	reasonThreshold    = 0.05
	viewExcludeCount   = 3
	trendingVolFactor  = 10.0
)

// Scorer turns product attributes and an identity's activity into a
// ranked recommendation score in [0,1].
type Scorer struct{}

func New() *Scorer { return &Scorer{} }

// Score computes the weighted sum for one candidate and the reasons for
// every term that contributed at least the threshold.
func (s *Scorer) Score(p models.Product, patterns *models.ActivityPatterns, trending float64, trend models.Trend) (float64, []string) {
	var activity float64
	var categoryViews int64
	if patterns != nil {
		activity = patterns.ActivityScore()
		categoryViews = patterns.CategoryViews[p.Category]
	}

	var reasons []string
	score := baseScore

	affinity := float64(categoryViews) / 10
	if affinity > maxAffinity {
		affinity = maxAffinity
	}
	score += affinity
	if affinity >= reasonThreshold {
		reasons = append(reasons, "popular in a category you browse")
	}

	ratingBoost := (p.Rating - 3) / 5
	if ratingBoost < 0 {
		ratingBoost = 0
	}
	if ratingBoost > maxRatingBoost {
		ratingBoost = maxRatingBoost
	}
	score += ratingBoost
	if ratingBoost >= reasonThreshold {
		reasons = append(reasons, "highly rated by buyers")
	}

	trendingTerm := trending * trendingWeight
	score += trendingTerm
	if trendingTerm >= reasonThreshold {
		reasons = append(reasons, "price is moving, worth watching")
	}

	switch trend {
	case models.TrendDecreasing:
		score += decreasingBonus
		reasons = append(reasons, "price is dropping")
	case models.TrendStable:
		score += stableBonus
		if stableBonus >= reasonThreshold {
			reasons = append(reasons, "price is holding steady")
		}
	}

	score *= 0.5 + 0.5*activity
	if score > 1 {
		score = 1
	}
	return score, reasons
}

// TrendingScore maps recent price volatility onto [0,1]. Deterministic
// for a given series.
func TrendingScore(prices []float64) float64 {
	v := forecast.Volatility(prices) * trendingVolFactor
	if v > 1 {
		return 1
	}
	return v
}

// Excluded reports whether a product should be left out of the set:
// already tracked, or viewed often enough that a nudge adds nothing.
func Excluded(patterns *models.ActivityPatterns, productID string) bool {
	if patterns == nil {
		return false
	}
	for _, id := range patterns.Tracked {
		if id == productID {
			return true
		}
	}
	return patterns.ViewCounts[productID] > viewExcludeCount
}

// Rank orders candidates by score desc, rating desc, product id asc and
// truncates to limit.
func Rank(cands []models.RecommendationCandidate, limit int) []models.RecommendationCandidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		if cands[i].Rating != cands[j].Rating {
			return cands[i].Rating > cands[j].Rating
		}
		return cands[i].ProductID < cands[j].ProductID
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// PersonalizationScore grades how tailored a whole set is: activity,
// category spread, tracking, and whether anything was returned at all.
func (s *Scorer) PersonalizationScore(patterns *models.ActivityPatterns, resultCount int) float64 {
	if patterns == nil {
		patterns = &models.ActivityPatterns{}
	}
	score := 0.4 * patterns.ActivityScore()

	diversity := float64(len(patterns.CategoryViews)) / 3
	if diversity > 1 {
		diversity = 1
	}
	score += 0.3 * diversity

	tracking := float64(len(patterns.Tracked)) / 5
	if tracking > 1 {
		tracking = 1
	}
	score += 0.2 * tracking

	if resultCount > 0 {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}
	return score
}
