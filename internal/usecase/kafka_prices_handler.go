package usecase

import (
	"context"
	"encoding/json"
	"time"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
	pkgkafka "BasketNa/pkg/kafka"
)

// KafkaPricesHandler consumes price tick messages and writes to storage.
type KafkaPricesHandler struct {
	topic   string
	storage domrepo.PriceStore
	metrics domrepo.Metrics
}

func NewKafkaPricesHandler(topic string, storage domrepo.PriceStore, metrics domrepo.Metrics) *KafkaPricesHandler {
	return &KafkaPricesHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaPricesHandler) Topic() string { return h.topic }

// incoming message schema: {product_id, retailer, price, t}
func (h *KafkaPricesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		ProductID string  `json:"product_id"`
		Retailer  string  `json:"retailer"`
		Price     float64 `json:"price"`
		T         int64   `json:"t"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(m.T, 0)).Seconds())

	start := time.Now()
	err := h.storage.Store(ctx, &models.PriceTick{
		ProductID: m.ProductID,
		Retailer:  models.Retailer(m.Retailer),
		Price:     m.Price,
		Timestamp: m.T,
	})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordTickStored("clickhouse", m.Retailer)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaPricesHandler)(nil)
