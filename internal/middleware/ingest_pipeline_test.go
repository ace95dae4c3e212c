package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
)

type countingProc struct {
	mu    sync.Mutex
	ticks []*models.PriceTick
	err   error
}

func (p *countingProc) Process(ctx context.Context, t *models.PriceTick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.ticks = append(p.ticks, t)
	return nil
}

func (p *countingProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ticks)
}

type noopMetrics struct{}

func (noopMetrics) RecordTickStored(backend, retailer string)             {}
func (noopMetrics) RecordError(kind string)                               {}
func (noopMetrics) RecordLastPrice(productID, retailer string, p float64) {}
func (noopMetrics) RecordLatency(op string, seconds float64)              {}
func (noopMetrics) RecordForecast(productID string)                       {}
func (noopMetrics) RecordRecommendation(kind string)                      {}

func validTick() *models.PriceTick {
	return &models.PriceTick{
		ProductID: "P001",
		Retailer:  models.RetailerAmazon,
		Price:     79900,
		Timestamp: time.Now().Unix(),
	}
}

func TestPipelineForwardsValidTick(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, noopMetrics{})

	require.NoError(t, p.Process(context.Background(), validTick()))
	assert.Equal(t, 1, proc.count())
}

func TestPipelineRejectsInvalidTicks(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, noopMetrics{})
	ctx := context.Background()

	bad := validTick()
	bad.Retailer = "ShopClues"
	assert.Error(t, p.Process(ctx, bad))

	bad = validTick()
	bad.Price = 0
	assert.Error(t, p.Process(ctx, bad))

	bad = validTick()
	bad.ProductID = ""
	assert.Error(t, p.Process(ctx, bad))

	assert.Error(t, p.Process(ctx, nil))
	assert.Equal(t, 0, proc.count())
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &countingProc{err: errors.New("backend down")}
	p := NewIngestPipeline(proc, noopMetrics{}, WithBufferSize(10))

	err := p.Process(context.Background(), validTick())
	assert.Error(t, err)
	assert.Equal(t, 1, len(p.bufCh))
}

func TestPipelineThrottlesPerSeries(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, noopMetrics{}, WithMaxRPS(2))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Process(ctx, validTick()))
	}
	// the token bucket admits the burst capacity, then drops
	assert.LessOrEqual(t, proc.count(), 3)
	assert.GreaterOrEqual(t, proc.count(), 2)
}

func TestPipelineTransformHook(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, noopMetrics{}, WithTransform(func(tk *models.PriceTick) *models.PriceTick {
		tk.Price = tk.Price / 100
		return tk
	}))

	require.NoError(t, p.Process(context.Background(), validTick()))
	require.Equal(t, 1, proc.count())
	assert.InDelta(t, 799, proc.ticks[0].Price, 1e-9)
}
