package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticksStored     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	forecasts       *prometheus.CounterVec
	recommendations *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basketna_ticks_stored_total",
				Help: "Total number of price ticks sent to backend",
			},
			[]string{"backend", "retailer"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basketna_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "basketna_last_price",
				Help: "Last recorded price for a product at a retailer",
			},
			[]string{"product", "retailer"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basketna_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		forecasts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basketna_forecasts_total",
				Help: "Total number of forecasts generated",
			},
			[]string{"product"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basketna_recommendations_total",
				Help: "Total number of recommendation sets generated",
			},
			[]string{"kind"},
		),
	}
}

// RecordTickStored records a price tick sent to a backend.
func (r *Recorder) RecordTickStored(backend, retailer string) {
	r.ticksStored.WithLabelValues(backend, retailer).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a product at a retailer.
func (r *Recorder) RecordLastPrice(productID, retailer string, price float64) {
	r.lastPrice.WithLabelValues(productID, retailer).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordForecast counts a generated forecast.
func (r *Recorder) RecordForecast(productID string) {
	r.forecasts.WithLabelValues(productID).Inc()
}

// RecordRecommendation counts a generated recommendation set.
func (r *Recorder) RecordRecommendation(kind string) {
	r.recommendations.WithLabelValues(kind).Inc()
}
