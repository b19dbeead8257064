package store

import (
	"context"
	"fmt"
	"sync"

	"claims/internal/claims/models"
	"claims/pkg/platform/sentinel"
)

// InMemoryStore keeps claims in insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	claims map[string]*models.Claim
	order  []string
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{claims: make(map[string]*models.Claim)}
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Claim, 0, len(s.order))
	for _, id := range s.order {
		c := *s.claims[id]
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.claims[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) Create(_ context.Context, claim *models.Claim) error {
	if claim == nil {
		return fmt.Errorf("claim is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *claim
	s.claims[claim.ID] = &cp
	s.order = append(s.order, claim.ID)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.claims, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
