package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
)

func tick(productID string, retailer models.Retailer, price float64) *models.PriceTick {
	return &models.PriceTick{
		ProductID: productID,
		Retailer:  retailer,
		Price:     price,
		Timestamp: time.Now().Unix(),
	}
}

func TestProcessorRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	store := newFakePriceStore()
	p := NewPriceProcessor(pub, store, newFakeMetrics(), "kafka", 100, time.Second)

	err := p.Process(context.Background(), tick("P001", models.RetailerAmazon, 79900))
	require.NoError(t, err)

	assert.Len(t, pub.published, 1)
	assert.Empty(t, store.stored)
}

func TestProcessorRoutesToClickHouse(t *testing.T) {
	pub := &fakePublisher{}
	store := newFakePriceStore()
	p := NewPriceProcessor(pub, store, newFakeMetrics(), "clickhouse", 100, time.Second)

	err := p.Process(context.Background(), tick("P001", models.RetailerCroma, 78990))
	require.NoError(t, err)

	assert.Len(t, store.stored, 1)
	assert.Empty(t, pub.published)
}

func TestProcessorUnknownBackend(t *testing.T) {
	p := NewPriceProcessor(&fakePublisher{}, newFakePriceStore(), newFakeMetrics(), "postgres", 100, time.Second)

	err := p.Process(context.Background(), tick("P001", models.RetailerAmazon, 1))
	assert.Error(t, err)
}

func TestProcessorBatch(t *testing.T) {
	store := newFakePriceStore()
	metrics := newFakeMetrics()
	p := NewPriceProcessor(&fakePublisher{}, store, metrics, "clickhouse", 100, time.Second)

	ticks := []*models.PriceTick{
		tick("P001", models.RetailerAmazon, 79900),
		tick("P001", models.RetailerFlipkart, 78500),
	}
	require.NoError(t, p.ProcessBatch(context.Background(), ticks))

	assert.Len(t, store.stored, 2)
	assert.Equal(t, 2, metrics.count("stored:clickhouse"))
}

func TestRefreshJobBackfillsAllRetailers(t *testing.T) {
	store := newFakePriceStore()
	job := newTestRefreshJob(t, store, 30)

	err := job.Handle(context.Background(), map[string]interface{}{"product_id": "P001"})
	require.NoError(t, err)

	assert.Len(t, store.stored, 30*len(models.KnownRetailers()))
	for _, tk := range store.stored {
		assert.Equal(t, "P001", tk.ProductID)
		assert.Positive(t, tk.Price)
	}
}

func TestRefreshJobUnknownProduct(t *testing.T) {
	job := newTestRefreshJob(t, newFakePriceStore(), 30)

	err := job.Handle(context.Background(), map[string]interface{}{"product_id": "P999"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
