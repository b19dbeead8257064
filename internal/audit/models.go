package audit

import (
	"context"
	"errors"
	"time"
)

// EntityType discriminates which entity an audit message refers to.
type EntityType string

const (
	EntityClaim EntityType = "Claim"
	EntityCover EntityType = "Cover"
)

func (t EntityType) Valid() bool {
	return t == EntityClaim || t == EntityCover
}

// ErrQueueClosed is returned to producers once the pipeline has shut down,
// and to the consumer once the closed queue has been drained.
var ErrQueueClosed = errors.New("audit queue closed")

// Message describes one auditable state change. It is a value type: the
// queue and the processor only ever hold copies.
type Message struct {
	EntityID   string
	HTTPMethod string
	EntityType EntityType
	// Timestamp is captured in UTC when the message is created, not when it
	// is persisted.
	Timestamp time.Time
}

// NewMessage builds a message with its timestamp normalised to UTC.
func NewMessage(entityType EntityType, entityID, httpMethod string, at time.Time) Message {
	return Message{
		EntityID:   entityID,
		HTTPMethod: httpMethod,
		EntityType: entityType,
		Timestamp:  at.UTC(),
	}
}

// Record converts the message into the row handed to the Store.
func (m Message) Record() Record {
	return Record{
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		HTTPMethod: m.HTTPMethod,
		Created:    m.Timestamp,
	}
}

// Record is a persisted claim or cover audit entry.
type Record struct {
	EntityType EntityType
	EntityID   string
	HTTPMethod string
	Created    time.Time
}

// Store persists audit records. Each call is expected to be its own unit of
// work: a failure must leave nothing behind that affects the next call.
type Store interface {
	PersistAudit(ctx context.Context, record Record) error
}
