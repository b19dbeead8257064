package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit pipeline.
type Metrics struct {
	Enqueued        *prometheus.CounterVec
	Rejected        prometheus.Counter
	Persisted       *prometheus.CounterVec
	Dropped         *prometheus.CounterVec
	PersistDuration prometheus.Histogram
}

// New creates and registers the audit metrics on reg. When queueDepth is
// non-nil a gauge reports its value on every scrape.
func New(reg prometheus.Registerer, queueDepth func() int) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		Enqueued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_audit_enqueued_total",
			Help: "Total number of audit messages queued for persistence",
		}, []string{"entity_type"}),
		Rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_audit_rejected_total",
			Help: "Total number of audit messages rejected because the pipeline was shut down",
		}),
		Persisted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_audit_persisted_total",
			Help: "Total number of audit messages persisted",
		}, []string{"entity_type"}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_audit_dropped_total",
			Help: "Total number of audit messages dropped after a persistence failure",
		}, []string{"entity_type"}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "claims_audit_persist_duration_seconds",
			Help:    "Duration of a single audit persistence unit of work",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
	if queueDepth != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "claims_audit_queue_depth",
			Help: "Number of audit messages waiting to be persisted",
		}, func() float64 { return float64(queueDepth()) })
	}
	return m
}

// IncEnqueued increments the enqueued counter for an entity type.
func (m *Metrics) IncEnqueued(entityType string) {
	m.Enqueued.WithLabelValues(entityType).Inc()
}

// IncRejected increments the rejected counter.
func (m *Metrics) IncRejected() {
	m.Rejected.Inc()
}

// IncPersisted increments the persisted counter for an entity type.
func (m *Metrics) IncPersisted(entityType string) {
	m.Persisted.WithLabelValues(entityType).Inc()
}

// IncDropped increments the dropped counter for an entity type.
func (m *Metrics) IncDropped(entityType string) {
	m.Dropped.WithLabelValues(entityType).Inc()
}

// ObservePersistDuration records how long a persistence attempt took.
func (m *Metrics) ObservePersistDuration(seconds float64) {
	m.PersistDuration.Observe(seconds)
}
