package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service level Prometheus metrics.
type Metrics struct {
	CoversCreated    prometheus.Counter
	CoversDeleted    prometheus.Counter
	ClaimsCreated    prometheus.Counter
	ClaimsDeleted    prometheus.Counter
	PremiumsComputed *prometheus.CounterVec
	RateLimited      prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CoversCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_covers_created_total",
			Help: "Total number of covers created",
		}),
		CoversDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_covers_deleted_total",
			Help: "Total number of covers deleted",
		}),
		ClaimsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_claims_created_total",
			Help: "Total number of claims created",
		}),
		ClaimsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_claims_deleted_total",
			Help: "Total number of claims deleted",
		}),
		PremiumsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_premiums_computed_total",
			Help: "Total number of premium computations by cover type",
		}, []string{"cover_type"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "claims_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) IncCoversCreated() {
	m.CoversCreated.Inc()
}

func (m *Metrics) IncCoversDeleted() {
	m.CoversDeleted.Inc()
}

func (m *Metrics) IncClaimsCreated() {
	m.ClaimsCreated.Inc()
}

func (m *Metrics) IncClaimsDeleted() {
	m.ClaimsDeleted.Inc()
}

// IncPremiumComputed counts one premium computation for coverType.
func (m *Metrics) IncPremiumComputed(coverType string) {
	m.PremiumsComputed.WithLabelValues(coverType).Inc()
}

func (m *Metrics) IncRateLimited() {
	m.RateLimited.Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}
