// Package storage provides timer state persistence implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Compile-time interface check.
var _ domain.TimerStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory timer store. Safe for concurrent access.
// States are copied on the way in and out so callers never share memory
// with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	timers map[string]domain.TimerState
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory timer store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		timers: make(map[string]domain.TimerState),
		log:    log,
	}
}

// Save persists a timer. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, state *domain.TimerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving timer %s (status=%s, remaining=%s)", state.ID, state.Status, state.Remaining)
	s.timers[state.ID] = *state
	return nil
}

// Load retrieves a timer by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.TimerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.timers[id]
	if !ok {
		s.log.Debug("timer not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return &ts, nil
}

// Delete removes a timer by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.timers, id)
	s.log.Debug("deleted timer %s", id)
	return nil
}

// List returns all stored timers ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.TimerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.TimerState, 0, len(s.timers))
	for _, ts := range s.timers {
		ts := ts
		out = append(out, &ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
