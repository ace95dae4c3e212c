package synth

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"BasketNa/internal/domain/models"
	applogger "BasketNa/pkg/logger"
)

// Stream emits generated ticks on a fixed interval so the ingest
// pipeline can run without a live retailer feed. It satisfies
// repository.PriceStream.
type Stream struct {
	gen      *Generator
	products []models.Product
	interval time.Duration
	log      *applogger.Logger

	mu        sync.Mutex
	connected bool
	stop      chan struct{}
	last      map[string]float64 // productID|retailer -> last price
}

func NewStream(gen *Generator, products []models.Product, interval time.Duration, log *applogger.Logger) *Stream {
	if interval <= 0 {
		interval = time.Second
	}
	return &Stream{
		gen:      gen,
		products: products,
		interval: interval,
		log:      log,
		last:     make(map[string]float64),
	}
}

func (s *Stream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}
	s.stop = make(chan struct{})
	s.connected = true
	return nil
}

// Subscribe is a no-op: the whole catalog is always subscribed.
func (s *Stream) Subscribe(ctx context.Context) error { return nil }

func (s *Stream) Read(ctx context.Context) (<-chan *models.PriceTick, <-chan error) {
	ticks := make(chan *models.PriceTick, len(s.products)*len(models.KnownRetailers()))
	errs := make(chan error, 1)

	go func() {
		defer close(ticks)
		defer close(errs)

		rng := rand.New(rand.NewSource(s.gen.Seed()))
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan():
				return
			case <-ticker.C:
				now := time.Now().Unix()
				for _, p := range s.products {
					for _, r := range models.KnownRetailers() {
						key := p.ID + "|" + string(r)
						s.mu.Lock()
						price := s.gen.Next(rng, p, r, s.last[key])
						s.last[key] = price
						s.mu.Unlock()

						tick := &models.PriceTick{
							ProductID: p.ID,
							Retailer:  r,
							Price:     price,
							Timestamp: now,
						}
						select {
						case ticks <- tick:
						default:
							// reader is behind, drop rather than block the clock
							if s.log != nil {
								s.log.Warn("synthetic stream buffer full, dropping tick",
									applogger.String("product", p.ID))
							}
						}
					}
				}
			}
		}
	}()

	return ticks, errs
}

// Reconnect resets the stream state.
func (s *Stream) Reconnect(ctx context.Context) error {
	_ = s.Close()
	return s.Connect(ctx)
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil
	}
	close(s.stop)
	s.connected = false
	return nil
}

func (s *Stream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Stream) stopChan() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop
}
