package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalrepo "BasketNa/internal/repository"
	"BasketNa/internal/service/deals"
	"BasketNa/internal/service/forecast"
	"BasketNa/internal/service/links"
	"BasketNa/internal/service/recommend"
)

func newTestRecommender(store *fakePriceStore, activity *fakeActivityStore, tracked *fakeTrackedStore, m *fakeMetrics) *Recommender {
	return NewRecommender(
		internalrepo.NewStaticCatalogWith(testProducts),
		store,
		activity,
		tracked,
		recommend.New(),
		forecast.New(),
		deals.New(),
		links.New(),
		nil,
		time.Minute,
		m,
	)
}

func alternating(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = lo
		} else {
			out[i] = hi
		}
	}
	return out
}

func TestPersonalizedExcludesTrackedAndOverViewed(t *testing.T) {
	store := newFakePriceStore()
	for _, p := range testProducts {
		store.seed(p.ID, "", driftSeries(1000, 0, 30)...)
	}
	activity := newFakeActivityStore()
	activity.counts["P001"] = 4 // viewed often enough to drop

	tracked := newFakeTrackedStore()
	_, err := tracked.Track(context.Background(), "u1", "P003")
	require.NoError(t, err)

	metrics := newFakeMetrics()
	r := newTestRecommender(store, activity, tracked, metrics)

	set, err := r.Personalized(context.Background(), "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, "u1", set.UserID)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "P002", set.Recommendations[0].ProductID)
	assert.Positive(t, set.PersonalizationScore)
	assert.Equal(t, 1, metrics.count("recommendation:personalized"))
}

func TestByCategoryFiltersAndExcludes(t *testing.T) {
	store := newFakePriceStore()
	r := newTestRecommender(store, newFakeActivityStore(), newFakeTrackedStore(), newFakeMetrics())

	cands, err := r.ByCategory(context.Background(), "Smartphones", 5, []string{"P001"})
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, "P002", cands[0].ProductID)

	_, err = r.ByCategory(context.Background(), "Washing Machines", 5, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestTrendingOrdersByVolatility(t *testing.T) {
	store := newFakePriceStore()
	store.seed("P001", "", driftSeries(1000, 0, 30)...)        // flat
	store.seed("P002", "", alternating(1000, 1100, 30)...)     // choppy
	store.seed("P003", "", driftSeries(30000, -0.5, 30)...)    // nearly flat
	r := newTestRecommender(store, newFakeActivityStore(), newFakeTrackedStore(), newFakeMetrics())

	cands, err := r.Trending(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, cands, 3)
	assert.Equal(t, "P002", cands[0].ProductID)
	assert.Greater(t, cands[0].TrendingScore, cands[1].TrendingScore)
}

func TestBestDealsFlagsDiscountedProduct(t *testing.T) {
	store := newFakePriceStore()
	deal := driftSeries(100, 0, 30)
	deal[len(deal)-1] = 80 // deep drop on the last day
	store.seed("P001", "", deal...)
	store.seed("P002", "", alternating(100, 110, 30)...)

	r := newTestRecommender(store, newFakeActivityStore(), newFakeTrackedStore(), newFakeMetrics())

	cands, err := r.BestDeals(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, "P001", cands[0].ProductID)
	assert.NotEmpty(t, cands[0].Reasons)
}

func TestForSessionSetsSessionID(t *testing.T) {
	store := newFakePriceStore()
	for _, p := range testProducts {
		store.seed(p.ID, "", driftSeries(1000, 0, 30)...)
	}
	r := newTestRecommender(store, newFakeActivityStore(), newFakeTrackedStore(), newFakeMetrics())

	set, err := r.ForSession(context.Background(), "sess-9", 2)
	require.NoError(t, err)

	assert.Equal(t, "sess-9", set.SessionID)
	assert.Empty(t, set.UserID)
	assert.LessOrEqual(t, len(set.Recommendations), 2)
	for _, c := range set.Recommendations {
		assert.NotEmpty(t, c.Links)
	}
}
