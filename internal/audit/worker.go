package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	auditmetrics "claims/internal/audit/metrics"
)

// Source yields queued messages in order to a single consumer.
type Source interface {
	Dequeue(ctx context.Context) (Message, error)
}

// Processor is the sole consumer of the audit queue. It persists messages
// one at a time, so two audits for the same entity are stored in the order
// they were queued. A message that fails to persist is logged and dropped;
// it is never retried and never reported back to its producer.
type Processor struct {
	source         Source
	store          Store
	logger         *slog.Logger
	metrics        *auditmetrics.Metrics
	persistTimeout time.Duration
}

// ProcessorOption configures the Processor.
type ProcessorOption func(*Processor)

// WithLogger sets a logger for persistence failures.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *auditmetrics.Metrics) ProcessorOption {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithPersistTimeout bounds each persistence attempt. Zero means no bound.
func WithPersistTimeout(d time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.persistTimeout = d
	}
}

func NewProcessor(source Source, store Store, opts ...ProcessorOption) *Processor {
	p := &Processor{
		source: source,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes until ctx is cancelled or the queue is closed and drained.
// Cancellation is checked between messages; a persist already in progress
// is allowed to finish. Run returns nil after a drain and ctx.Err() after
// cancellation, in which case queued messages may be left unprocessed.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.source.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) {
				p.logger.InfoContext(ctx, "audit queue drained, processor stopping")
				return nil
			}
			return err
		}

		p.process(ctx, msg)
	}
}

func (p *Processor) process(ctx context.Context, msg Message) {
	start := time.Now()
	if err := p.persist(ctx, msg); err != nil {
		if p.metrics != nil {
			p.metrics.IncDropped(string(msg.EntityType))
		}
		p.logger.ErrorContext(ctx, "failed to persist audit message",
			"entity_type", string(msg.EntityType),
			"entity_id", msg.EntityID,
			"http_method", msg.HTTPMethod,
			"error", err,
		)
		return
	}
	if p.metrics != nil {
		p.metrics.IncPersisted(string(msg.EntityType))
		p.metrics.ObservePersistDuration(time.Since(start).Seconds())
	}
}

// persist is one unit of work. Its context survives loop cancellation so an
// in-flight write completes, and a panicking store is turned into an error.
func (p *Processor) persist(ctx context.Context, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while persisting audit: %v", r)
		}
	}()

	if !msg.EntityType.Valid() {
		return fmt.Errorf("unknown audit entity type %q", msg.EntityType)
	}

	persistCtx := context.WithoutCancel(ctx)
	if p.persistTimeout > 0 {
		var cancel context.CancelFunc
		persistCtx, cancel = context.WithTimeout(persistCtx, p.persistTimeout)
		defer cancel()
	}
	return p.store.PersistAudit(persistCtx, msg.Record())
}
