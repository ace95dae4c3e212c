package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
	"BasketNa/pkg/queue"
)

// Tracker manages tracked products, sessions, and view events.
type Tracker struct {
	catalog    domrepo.Catalog
	tracked    domrepo.TrackedStore
	sessions   domrepo.SessionStore
	activity   domrepo.ActivityStore
	queue      queue.QueueService
	sessionTTL time.Duration
	metrics    domrepo.Metrics
}

func NewTracker(
	catalog domrepo.Catalog,
	tracked domrepo.TrackedStore,
	sessions domrepo.SessionStore,
	activity domrepo.ActivityStore,
	q queue.QueueService,
	sessionTTL time.Duration,
	metrics domrepo.Metrics,
) *Tracker {
	return &Tracker{
		catalog:    catalog,
		tracked:    tracked,
		sessions:   sessions,
		activity:   activity,
		queue:      q,
		sessionTTL: sessionTTL,
		metrics:    metrics,
	}
}

// Track follows a product for a user and schedules a background price
// refresh so the series is warm when forecasts are requested.
func (t *Tracker) Track(ctx context.Context, userID, productID string) (models.TrackedItem, error) {
	if _, ok := t.catalog.Get(productID); !ok {
		return models.TrackedItem{}, ErrProductNotFound
	}
	item, err := t.tracked.Track(ctx, userID, productID)
	if err != nil {
		t.metrics.RecordError("track")
		return models.TrackedItem{}, fmt.Errorf("track %s: %w", productID, err)
	}
	if t.queue != nil {
		if err := t.queue.PublishMessage(ctx, PriceRefreshType, PriceRefreshPayload{ProductID: productID}); err != nil {
			// tracking already succeeded; the refresh is best effort
			t.metrics.RecordError("track_enqueue")
		}
	}
	return item, nil
}

// Untrack stops following a product.
func (t *Tracker) Untrack(ctx context.Context, userID, productID string) error {
	if _, ok := t.catalog.Get(productID); !ok {
		return ErrProductNotFound
	}
	return t.tracked.Untrack(ctx, userID, productID)
}

// Tracked lists a user's followed products.
func (t *Tracker) Tracked(ctx context.Context, userID string) ([]models.TrackedItem, error) {
	return t.tracked.List(ctx, userID)
}

// RecordView stores one product page view for a user or session.
func (t *Tracker) RecordView(ctx context.Context, userID, sessionID, productID string) error {
	product, ok := t.catalog.Get(productID)
	if !ok {
		return ErrProductNotFound
	}
	ev := &models.ViewEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		ProductID: productID,
		Category:  product.Category,
		Timestamp: time.Now().UTC(),
	}
	if err := t.activity.RecordView(ctx, ev); err != nil {
		t.metrics.RecordError("record_view")
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// CreateSession mints an anonymous browsing session.
func (t *Tracker) CreateSession(ctx context.Context) (models.Session, error) {
	return t.sessions.Create(ctx, t.sessionTTL)
}

// SessionExists reports whether a session id is still live.
func (t *Tracker) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return t.sessions.Exists(ctx, sessionID)
}
