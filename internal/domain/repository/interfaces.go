package repository

import (
	"context"
	"time"

	"BasketNa/internal/domain/models"
)

type PriceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.PriceTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, t *models.PriceTick) error
	PublishBatch(ctx context.Context, ticks []*models.PriceTick) error
	Close() error
}

type PriceStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, t *models.PriceTick) error
	StoreBatch(ctx context.Context, ticks []*models.PriceTick) error
	// History returns the daily series for a product over the trailing
	// window, ordered by day ascending. Empty retailer averages across
	// retailers per day.
	History(ctx context.Context, productID string, retailer models.Retailer, days int) ([]models.PricePoint, error)
	// LatestQuotes returns the most recent price per retailer.
	LatestQuotes(ctx context.Context, productID string) ([]models.RetailerQuote, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type ActivityStore interface {
	RecordView(ctx context.Context, ev *models.ViewEvent) error
	// ViewCounts returns per-product view counts for a user or session
	// since the given time. Either id may be empty.
	ViewCounts(ctx context.Context, userID, sessionID string, since time.Time) (map[string]int64, error)
}

type TrackedStore interface {
	Track(ctx context.Context, userID, productID string) (models.TrackedItem, error)
	Untrack(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]models.TrackedItem, error)
}

type SessionStore interface {
	Create(ctx context.Context, ttl time.Duration) (models.Session, error)
	Exists(ctx context.Context, sessionID string) (bool, error)
}

type Catalog interface {
	Get(productID string) (models.Product, bool)
	List() []models.Product
	Search(query string) []models.Product
	ByCategory(category string) []models.Product
}

type Metrics interface {
	RecordTickStored(backend, retailer string)
	RecordError(kind string)
	RecordLastPrice(productID, retailer string, price float64)
	RecordLatency(op string, seconds float64)
	RecordForecast(productID string)
	RecordRecommendation(kind string)
}
