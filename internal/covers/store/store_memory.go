package store

import (
	"context"
	"fmt"
	"sync"

	"claims/internal/covers/models"
	"claims/pkg/platform/sentinel"
)

// InMemoryStore keeps covers in insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	covers map[string]*models.Cover
	order  []string
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{covers: make(map[string]*models.Cover)}
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Cover, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Cover, 0, len(s.order))
	for _, id := range s.order {
		c := *s.covers[id]
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.Cover, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.covers[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) Create(_ context.Context, cover *models.Cover) error {
	if cover == nil {
		return fmt.Errorf("cover is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.covers[cover.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *cover
	s.covers[cover.ID] = &cp
	s.order = append(s.order, cover.ID)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.covers[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.covers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
