package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"BasketNa/internal/domain/models"
	internalrepo "BasketNa/internal/repository"
	"BasketNa/internal/service/synth"
	applogger "BasketNa/pkg/logger"
)

func newTestRefreshJob(t *testing.T, store *fakePriceStore, historyDays int) *PriceRefreshJob {
	t.Helper()
	lgr, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewPriceRefreshJob(lgr, internalrepo.NewStaticCatalogWith(testProducts), synth.NewGenerator(42), store, historyDays)
}

// In-memory doubles for the repository interfaces.

type fakePriceStore struct {
	mu     sync.Mutex
	series map[string][]models.PricePoint // productID|retailer
	quotes map[string][]models.RetailerQuote
	stored []*models.PriceTick
	errs   map[string]error
}

func newFakePriceStore() *fakePriceStore {
	return &fakePriceStore{
		series: make(map[string][]models.PricePoint),
		quotes: make(map[string][]models.RetailerQuote),
	}
}

func (s *fakePriceStore) seed(productID string, retailer models.Retailer, prices ...float64) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -len(prices))
	points := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = models.PricePoint{Day: day.AddDate(0, 0, i), Retailer: retailer, Price: p}
	}
	s.series[productID+"|"+string(retailer)] = points
}

func (s *fakePriceStore) Init(ctx context.Context) error { return nil }

func (s *fakePriceStore) Store(ctx context.Context, t *models.PriceTick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["store"]; err != nil {
		return err
	}
	s.stored = append(s.stored, t)
	return nil
}

func (s *fakePriceStore) StoreBatch(ctx context.Context, ticks []*models.PriceTick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs["store"]; err != nil {
		return err
	}
	s.stored = append(s.stored, ticks...)
	return nil
}

func (s *fakePriceStore) History(ctx context.Context, productID string, retailer models.Retailer, days int) ([]models.PricePoint, error) {
	points := s.series[productID+"|"+string(retailer)]
	if len(points) > days {
		points = points[len(points)-days:]
	}
	out := make([]models.PricePoint, len(points))
	copy(out, points)
	return out, nil
}

func (s *fakePriceStore) LatestQuotes(ctx context.Context, productID string) ([]models.RetailerQuote, error) {
	return s.quotes[productID], nil
}

func (s *fakePriceStore) Health(ctx context.Context) error { return nil }
func (s *fakePriceStore) Close() error                     { return nil }

type fakePublisher struct {
	mu        sync.Mutex
	published []*models.PriceTick
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, t *models.PriceTick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, t)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, ticks []*models.PriceTick) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, ticks...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeActivityStore struct {
	mu     sync.Mutex
	events []*models.ViewEvent
	counts map[string]int64
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{counts: make(map[string]int64)}
}

func (a *fakeActivityStore) RecordView(ctx context.Context, ev *models.ViewEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	a.counts[ev.ProductID]++
	return nil
}

func (a *fakeActivityStore) ViewCounts(ctx context.Context, userID, sessionID string, since time.Time) (map[string]int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int64, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out, nil
}

type fakeTrackedStore struct {
	mu    sync.Mutex
	items map[string][]models.TrackedItem // userID -> items
}

func newFakeTrackedStore() *fakeTrackedStore {
	return &fakeTrackedStore{items: make(map[string][]models.TrackedItem)}
}

func (t *fakeTrackedStore) Track(ctx context.Context, userID, productID string) (models.TrackedItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, it := range t.items[userID] {
		if it.ProductID == productID {
			return it, nil
		}
	}
	item := models.TrackedItem{UserID: userID, ProductID: productID, CreatedAt: time.Now().UTC()}
	t.items[userID] = append(t.items[userID], item)
	return item, nil
}

func (t *fakeTrackedStore) Untrack(ctx context.Context, userID, productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := t.items[userID]
	for i, it := range items {
		if it.ProductID == productID {
			t.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (t *fakeTrackedStore) List(ctx context.Context, userID string) ([]models.TrackedItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.TrackedItem(nil), t.items[userID]...), nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]bool)}
}

func (s *fakeSessionStore) Create(ctx context.Context, ttl time.Duration) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	session := models.Session{ID: "sess-1", CreatedAt: now, ExpiresAt: now.Add(ttl)}
	s.sessions[session.ID] = true
	return session, nil
}

func (s *fakeSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

type fakeQueue struct {
	mu       sync.Mutex
	messages []struct {
		Type    string
		Payload interface{}
	}
}

func (q *fakeQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, struct {
		Type    string
		Payload interface{}
	}{msgType, payload})
	return nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: make(map[string]int)}
}

func (m *fakeMetrics) bump(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *fakeMetrics) count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func (m *fakeMetrics) RecordTickStored(backend, retailer string)              { m.bump("stored:" + backend) }
func (m *fakeMetrics) RecordError(kind string)                                { m.bump("error:" + kind) }
func (m *fakeMetrics) RecordLastPrice(productID, retailer string, p float64)  { m.bump("last_price") }
func (m *fakeMetrics) RecordLatency(op string, seconds float64)               { m.bump("latency:" + op) }
func (m *fakeMetrics) RecordForecast(productID string)                        { m.bump("forecast") }
func (m *fakeMetrics) RecordRecommendation(kind string)                       { m.bump("recommendation:" + kind) }
