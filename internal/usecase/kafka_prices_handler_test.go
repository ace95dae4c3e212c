package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BasketNa/internal/domain/models"
)

func TestKafkaPricesHandlerStoresTick(t *testing.T) {
	store := newFakePriceStore()
	h := NewKafkaPricesHandler("basketna.prices", store, newFakeMetrics())

	// millisecond event time must be normalized to seconds
	now := time.Now()
	payload := []byte(`{"product_id":"P001","retailer":"Flipkart","price":78500,"t":` +
		strconv.FormatInt(now.UnixMilli(), 10) + `}`)
	require.NoError(t, h.Handle(context.Background(), payload))

	require.Len(t, store.stored, 1)
	tick := store.stored[0]
	assert.Equal(t, "P001", tick.ProductID)
	assert.Equal(t, models.RetailerFlipkart, tick.Retailer)
	assert.Equal(t, now.Unix(), tick.Timestamp)
}

func TestKafkaPricesHandlerRejectsGarbage(t *testing.T) {
	h := NewKafkaPricesHandler("basketna.prices", newFakePriceStore(), newFakeMetrics())

	assert.Error(t, h.Handle(context.Background(), []byte("not json")))
}
