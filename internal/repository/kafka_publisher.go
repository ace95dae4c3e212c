package repository

import (
	"context"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/domain/repository"
	pkgkafka "BasketNa/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Messages are keyed by
// product id so per-product ordering survives partitioning.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, t *models.PriceTick) error {
	return p.producer.Publish(ctx, p.topic, []byte(t.ProductID), tickPayload(t))
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, ticks []*models.PriceTick) error {
	if len(ticks) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(ticks))
	for i, t := range ticks {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(t.ProductID),
			Value: tickPayload(t),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func tickPayload(t *models.PriceTick) map[string]interface{} {
	return map[string]interface{}{
		"product_id": t.ProductID,
		"retailer":   string(t.Retailer),
		"price":      t.Price,
		"t":          t.Timestamp,
	}
}
