package memory

import (
	"context"
	"fmt"
	"sync"

	"claims/internal/audit"
)

// InMemoryStore keeps claim and cover audits in insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	claims []audit.Record
	covers []audit.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) PersistAudit(_ context.Context, record audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch record.EntityType {
	case audit.EntityClaim:
		s.claims = append(s.claims, record)
	case audit.EntityCover:
		s.covers = append(s.covers, record)
	default:
		return fmt.Errorf("unknown audit entity type %q", record.EntityType)
	}
	return nil
}

// ListClaimAudits returns all claim audits in the order they were persisted.
func (s *InMemoryStore) ListClaimAudits(_ context.Context) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Record{}, s.claims...), nil
}

// ListCoverAudits returns all cover audits in the order they were persisted.
func (s *InMemoryStore) ListCoverAudits(_ context.Context) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Record{}, s.covers...), nil
}

// ListByEntity returns the audits of one claim or cover, oldest first.
func (s *InMemoryStore) ListByEntity(_ context.Context, entityType audit.EntityType, entityID string) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source := s.covers
	if entityType == audit.EntityClaim {
		source = s.claims
	}
	var out []audit.Record
	for _, r := range source {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Len returns the total number of persisted audits.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims) + len(s.covers)
}
