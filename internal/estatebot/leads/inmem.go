package leads

import (
	"context"
	"sync"
)

// InmemStore keeps leads in memory. Used in tests and as a last-resort
// fallback when no durable backend is configured.
type InmemStore struct {
	mu    sync.Mutex
	leads []Lead

	// FailSave, when set, makes Save fail; tests use it to exercise the
	// persistence-failure path.
	FailSave bool
}

// NewInmem creates an in-memory lead store.
func NewInmem() *InmemStore {
	return &InmemStore{}
}

func (s *InmemStore) Save(ctx context.Context, lead Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave {
		return ErrSaveFailed
	}
	s.leads = append(s.leads, lead)
	return nil
}

func (s *InmemStore) List(ctx context.Context) ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Lead, len(s.leads))
	copy(out, s.leads)
	return out, nil
}
