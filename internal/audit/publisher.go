package audit

import (
	"time"

	auditmetrics "claims/internal/audit/metrics"
)

// Enqueuer accepts messages for background persistence without blocking.
type Enqueuer interface {
	Enqueue(msg Message) error
}

// Auditer is the producer side of the pipeline. Request handlers call it
// inline once a claim or cover write has committed; it returns as soon as
// the message is queued.
type Auditer struct {
	queue   Enqueuer
	now     func() time.Time
	metrics *auditmetrics.Metrics
}

// AuditerOption configures the Auditer.
type AuditerOption func(*Auditer)

// WithClock overrides the clock used to stamp messages.
func WithClock(now func() time.Time) AuditerOption {
	return func(a *Auditer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithAuditerMetrics sets the metrics collector.
func WithAuditerMetrics(m *auditmetrics.Metrics) AuditerOption {
	return func(a *Auditer) {
		a.metrics = m
	}
}

func NewAuditer(queue Enqueuer, opts ...AuditerOption) *Auditer {
	a := &Auditer{
		queue: queue,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditClaim queues an audit entry for a claim operation. The only error is
// ErrQueueClosed once the pipeline has shut down.
func (a *Auditer) AuditClaim(claimID, httpMethod string) error {
	return a.enqueue(EntityClaim, claimID, httpMethod)
}

// AuditCover queues an audit entry for a cover operation.
func (a *Auditer) AuditCover(coverID, httpMethod string) error {
	return a.enqueue(EntityCover, coverID, httpMethod)
}

func (a *Auditer) enqueue(entityType EntityType, entityID, httpMethod string) error {
	msg := NewMessage(entityType, entityID, httpMethod, a.now())
	if err := a.queue.Enqueue(msg); err != nil {
		if a.metrics != nil {
			a.metrics.IncRejected()
		}
		return err
	}
	if a.metrics != nil {
		a.metrics.IncEnqueued(string(entityType))
	}
	return nil
}
