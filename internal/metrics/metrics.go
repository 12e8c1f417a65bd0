// Package metrics exposes prometheus instrumentation for the repository layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "billwise"

// Outcome labels besides the response kinds.
const (
	OutcomeSuccess = "success"
)

// Metrics records repository operations. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	streams    *prometheus.GaugeVec
}

// New registers the repository collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Repository operations by entity, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in the store per repository operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"entity", "op"}),
		streams: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "live_queries",
			Help:      "Live queries currently open.",
		}, []string{"entity"}),
	}
}

// Observe records one finished operation.
func (m *Metrics) Observe(entity, op, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(entity, op, outcome).Inc()
	m.duration.WithLabelValues(entity, op).Observe(took.Seconds())
}

// StreamOpened counts a live query as open until the returned func is called.
func (m *Metrics) StreamOpened(entity string) (closed func()) {
	if m == nil {
		return func() {}
	}
	g := m.streams.WithLabelValues(entity)
	g.Inc()
	return g.Dec
}
