package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
	domservice "BasketNa/internal/domain/service"
	"BasketNa/internal/service/forecast"
	"BasketNa/internal/service/recommend"
	pkgcache "BasketNa/pkg/cache"
)

// activityLookbackDays bounds how much behavior feeds the scorer.
const activityLookbackDays = 30

// Recommender builds ranked product suggestions for users and sessions.
type Recommender struct {
	catalog  domrepo.Catalog
	prices   domrepo.PriceStore
	activity domrepo.ActivityStore
	tracked  domrepo.TrackedStore
	scorer   domservice.Scorer
	engine   domservice.Forecaster
	deals    domservice.DealClassifier
	links    domservice.LinkBuilder
	cache    pkgcache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
}

func NewRecommender(
	catalog domrepo.Catalog,
	prices domrepo.PriceStore,
	activity domrepo.ActivityStore,
	tracked domrepo.TrackedStore,
	scorer domservice.Scorer,
	engine domservice.Forecaster,
	classifier domservice.DealClassifier,
	builder domservice.LinkBuilder,
	cacheSvc pkgcache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
) *Recommender {
	return &Recommender{
		catalog:  catalog,
		prices:   prices,
		activity: activity,
		tracked:  tracked,
		scorer:   scorer,
		engine:   engine,
		deals:    classifier,
		links:    builder,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
	}
}

// Personalized ranks the catalog against one user's viewing and
// tracking history.
func (r *Recommender) Personalized(ctx context.Context, userID string, limit int) (*models.RecommendationSet, error) {
	key := pkgcache.GenerateKeyWithParams("recommendations", "personalized", userID, limit)
	if set, ok := r.cached(ctx, key); ok {
		return set, nil
	}

	patterns, err := r.buildPatterns(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	set, err := r.scoreCatalog(ctx, patterns, r.catalog.List(), limit)
	if err != nil {
		return nil, err
	}
	set.UserID = userID

	r.store(ctx, key, set)
	r.metrics.RecordRecommendation("personalized")
	return set, nil
}

// ForSession ranks the catalog against an anonymous session's views.
func (r *Recommender) ForSession(ctx context.Context, sessionID string, limit int) (*models.RecommendationSet, error) {
	key := pkgcache.GenerateKeyWithParams("recommendations", "session", sessionID, limit)
	if set, ok := r.cached(ctx, key); ok {
		return set, nil
	}

	patterns, err := r.buildPatterns(ctx, "", sessionID)
	if err != nil {
		return nil, err
	}
	set, err := r.scoreCatalog(ctx, patterns, r.catalog.List(), limit)
	if err != nil {
		return nil, err
	}
	set.SessionID = sessionID

	r.store(ctx, key, set)
	r.metrics.RecordRecommendation("session")
	return set, nil
}

// ByCategory ranks one category without any identity signal.
func (r *Recommender) ByCategory(ctx context.Context, category string, limit int, exclude []string) ([]models.RecommendationCandidate, error) {
	products := r.catalog.ByCategory(category)
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products in category %q", ErrProductNotFound, category)
	}
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	cands := make([]models.RecommendationCandidate, 0, len(products))
	for _, p := range products {
		if skip[p.ID] {
			continue
		}
		c, err := r.buildCandidate(ctx, p, nil)
		if err != nil {
			return nil, err
		}
		cands = append(cands, c)
	}
	r.metrics.RecordRecommendation("category")
	return recommend.Rank(cands, limit), nil
}

// Trending orders the catalog by recent price volatility.
func (r *Recommender) Trending(ctx context.Context, limit int) ([]models.RecommendationCandidate, error) {
	cands := make([]models.RecommendationCandidate, 0)
	for _, p := range r.catalog.List() {
		c, err := r.buildCandidate(ctx, p, nil)
		if err != nil {
			return nil, err
		}
		cands = append(cands, c)
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].TrendingScore != cands[j].TrendingScore {
			return cands[i].TrendingScore > cands[j].TrendingScore
		}
		if cands[i].Rating != cands[j].Rating {
			return cands[i].Rating > cands[j].Rating
		}
		return cands[i].ProductID < cands[j].ProductID
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	r.metrics.RecordRecommendation("trending")
	return cands, nil
}

// BestDeals returns products whose current price qualifies as a deal,
// deepest discount first.
func (r *Recommender) BestDeals(ctx context.Context, limit int) ([]models.RecommendationCandidate, error) {
	type scored struct {
		cand  models.RecommendationCandidate
		depth float64
	}
	var hits []scored
	for _, p := range r.catalog.List() {
		history, err := r.prices.History(ctx, p.ID, "", domrepo.LongWindowDays)
		if err != nil {
			return nil, fmt.Errorf("history for %s: %w", p.ID, err)
		}
		if len(history) < 2 {
			continue
		}
		prices := make([]float64, len(history))
		var sum float64
		for i, pt := range history {
			prices[i] = pt.Price
			sum += pt.Price
		}
		current := prices[len(prices)-1]
		mean := sum / float64(len(prices))

		var lower float64
		if points, err := r.engine.Forecast(history, 1); err == nil {
			lower = points[0].Lower
		} else if !errors.Is(err, forecast.ErrInsufficientHistory) {
			return nil, err
		}

		signal := r.deals.IsGreatDeal(current, prices, lower)
		if !signal.GreatDeal {
			continue
		}
		c, err := r.buildCandidate(ctx, p, nil)
		if err != nil {
			return nil, err
		}
		c.Reasons = signal.Reasons
		hits = append(hits, scored{cand: c, depth: (mean - current) / mean})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].depth != hits[j].depth {
			return hits[i].depth > hits[j].depth
		}
		return hits[i].cand.ProductID < hits[j].cand.ProductID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]models.RecommendationCandidate, len(hits))
	for i, h := range hits {
		out[i] = h.cand
	}
	r.metrics.RecordRecommendation("best_deals")
	return out, nil
}

func (r *Recommender) scoreCatalog(ctx context.Context, patterns *models.ActivityPatterns, products []models.Product, limit int) (*models.RecommendationSet, error) {
	cands := make([]models.RecommendationCandidate, 0, len(products))
	for _, p := range products {
		if recommend.Excluded(patterns, p.ID) {
			continue
		}
		c, err := r.buildCandidate(ctx, p, patterns)
		if err != nil {
			return nil, err
		}
		cands = append(cands, c)
	}
	ranked := recommend.Rank(cands, limit)
	return &models.RecommendationSet{
		Recommendations:      ranked,
		TotalCount:           len(ranked),
		PersonalizationScore: r.scorer.PersonalizationScore(patterns, len(ranked)),
		GeneratedAt:          time.Now().UTC(),
	}, nil
}

func (r *Recommender) buildCandidate(ctx context.Context, p models.Product, patterns *models.ActivityPatterns) (models.RecommendationCandidate, error) {
	history, err := r.prices.History(ctx, p.ID, "", domrepo.LongWindowDays)
	if err != nil {
		return models.RecommendationCandidate{}, fmt.Errorf("history for %s: %w", p.ID, err)
	}
	prices := make([]float64, len(history))
	var sum float64
	for i, pt := range history {
		prices[i] = pt.Price
		sum += pt.Price
	}

	trending := recommend.TrendingScore(prices)
	trend := r.deals.ClassifyTrend(prices)
	score, reasons := r.scorer.Score(p, patterns, trending, trend)

	cand := models.RecommendationCandidate{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Category:      p.Category,
		Rating:        p.Rating,
		TrendingScore: trending,
		PriceTrend:    trend,
		Score:         score,
		Reasons:       reasons,
		Links:         r.links.All(p.Name),
	}

	quotes, err := r.prices.LatestQuotes(ctx, p.ID)
	if err != nil {
		return models.RecommendationCandidate{}, fmt.Errorf("latest quotes for %s: %w", p.ID, err)
	}
	if ranked, _, _ := r.deals.RankQuotes(quotes); len(ranked) > 0 {
		cand.BestRetailer = ranked[0].Retailer
		cand.CurrentPrice = ranked[0].Price
	} else if len(prices) > 0 {
		cand.CurrentPrice = prices[len(prices)-1]
	}
	if len(prices) > 0 && cand.CurrentPrice > 0 {
		mean := sum / float64(len(prices))
		if savings := mean - cand.CurrentPrice; savings > 0 {
			cand.PotentialSavings = savings
		}
	}
	return cand, nil
}

func (r *Recommender) buildPatterns(ctx context.Context, userID, sessionID string) (*models.ActivityPatterns, error) {
	since := time.Now().UTC().AddDate(0, 0, -activityLookbackDays)
	views, err := r.activity.ViewCounts(ctx, userID, sessionID, since)
	if err != nil {
		return nil, fmt.Errorf("view counts: %w", err)
	}

	patterns := &models.ActivityPatterns{
		ViewCounts:    views,
		CategoryViews: make(map[string]int64),
	}
	for id, n := range views {
		if p, ok := r.catalog.Get(id); ok {
			patterns.CategoryViews[p.Category] += n
		}
	}
	if userID != "" {
		items, err := r.tracked.List(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("tracked list: %w", err)
		}
		for _, it := range items {
			patterns.Tracked = append(patterns.Tracked, it.ProductID)
		}
	}
	return patterns, nil
}

func (r *Recommender) cached(ctx context.Context, key string) (*models.RecommendationSet, bool) {
	if r.cache == nil {
		return nil, false
	}
	var set models.RecommendationSet
	if err := r.cache.Get(ctx, key, &set); err != nil {
		return nil, false
	}
	return &set, true
}

func (r *Recommender) store(ctx context.Context, key string, set *models.RecommendationSet) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, key, set, r.cacheTTL)
}
