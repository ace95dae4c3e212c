package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BasketNa/internal/domain/models"
)

func product(id string, rating float64) models.Product {
	return models.Product{ID: id, Name: id, Category: "Laptops", Rating: rating}
}

func TestScoreColdStartOrdersByRating(t *testing.T) {
	s := New()
	five, _ := s.Score(product("A", 5), nil, 0, models.TrendStable)
	three, _ := s.Score(product("B", 3), nil, 0, models.TrendStable)
	four, _ := s.Score(product("C", 4), nil, 0, models.TrendStable)

	assert.Greater(t, five, four)
	assert.Greater(t, four, three)
}

func TestScoreCapsAtOne(t *testing.T) {
	s := New()
	patterns := &models.ActivityPatterns{
		ViewCounts:    map[string]int64{"X": 20, "Y": 20},
		CategoryViews: map[string]int64{"Laptops": 50},
		Tracked:       []string{"T1", "T2", "T3"},
	}
	score, _ := s.Score(product("A", 5), patterns, 1, models.TrendDecreasing)
	assert.LessOrEqual(t, score, 1.0)
	assert.Greater(t, score, 0.9)
}

func TestScoreActivityMultiplier(t *testing.T) {
	s := New()
	patterns := &models.ActivityPatterns{
		ViewCounts:    map[string]int64{"X": 30},
		CategoryViews: map[string]int64{"Other": 30},
	}
	cold, _ := s.Score(product("A", 4), nil, 0, models.TrendStable)
	warm, _ := s.Score(product("A", 4), patterns, 0, models.TrendStable)
	// same terms, but full activity doubles the multiplier
	assert.InDelta(t, cold*2, warm, 1e-9)
}

func TestScoreDecreasingTrendBeatsStable(t *testing.T) {
	s := New()
	dropping, reasons := s.Score(product("A", 4), nil, 0, models.TrendDecreasing)
	stable, _ := s.Score(product("A", 4), nil, 0, models.TrendStable)
	rising, _ := s.Score(product("A", 4), nil, 0, models.TrendIncreasing)

	assert.Greater(t, dropping, stable)
	assert.Greater(t, stable, rising)
	assert.Contains(t, reasons, "price is dropping")
}

func TestScoreReasonsThreshold(t *testing.T) {
	s := New()
	_, reasons := s.Score(product("A", 3), nil, 0, models.TrendIncreasing)
	// base only, nothing clears the threshold
	assert.Empty(t, reasons)

	_, reasons = s.Score(product("B", 5), nil, 0, models.TrendIncreasing)
	assert.Contains(t, reasons, "highly rated by buyers")
}

func TestTrendingScoreBounds(t *testing.T) {
	assert.Zero(t, TrendingScore([]float64{100, 100, 100}))

	wild := []float64{100, 140, 80, 150, 70, 160, 60, 150, 80, 140, 90, 130, 100, 120}
	assert.Equal(t, 1.0, TrendingScore(wild))
}

func TestExcluded(t *testing.T) {
	patterns := &models.ActivityPatterns{
		ViewCounts: map[string]int64{"seen": 4, "glanced": 2},
		Tracked:    []string{"tracked"},
	}
	assert.True(t, Excluded(patterns, "tracked"))
	assert.True(t, Excluded(patterns, "seen"))
	assert.False(t, Excluded(patterns, "glanced"))
	assert.False(t, Excluded(patterns, "new"))
	assert.False(t, Excluded(nil, "anything"))
}

func TestRankOrderingAndLimit(t *testing.T) {
	cands := []models.RecommendationCandidate{
		{ProductID: "C", Score: 0.5, Rating: 4},
		{ProductID: "A", Score: 0.7, Rating: 3},
		{ProductID: "B", Score: 0.5, Rating: 5},
		{ProductID: "D", Score: 0.5, Rating: 4},
	}
	got := Rank(cands, 3)
	assert.Len(t, got, 3)
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, "B", got[1].ProductID)
	// tie on score and rating breaks by product id
	assert.Equal(t, "C", got[2].ProductID)
}

func TestPersonalizationScore(t *testing.T) {
	s := New()
	assert.InDelta(t, 0.1, s.PersonalizationScore(nil, 5), 1e-9)
	assert.Zero(t, s.PersonalizationScore(nil, 0))

	full := &models.ActivityPatterns{
		ViewCounts:    map[string]int64{"a": 10, "b": 10, "c": 10},
		CategoryViews: map[string]int64{"x": 1, "y": 1, "z": 1},
		Tracked:       []string{"1", "2", "3", "4", "5"},
	}
	assert.InDelta(t, 1.0, s.PersonalizationScore(full, 10), 1e-9)
}
