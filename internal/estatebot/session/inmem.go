package session

import (
	"context"
	"sync"
)

// InmemStore keeps sessions in process memory. The default backend.
type InmemStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewInmem creates an in-memory session store.
func NewInmem() *InmemStore {
	return &InmemStore{sessions: make(map[string]*Session)}
}

func (s *InmemStore) Get(ctx context.Context, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	sess := New(userID)
	s.sessions[userID] = sess
	return sess, nil
}

func (s *InmemStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *InmemStore) Reset(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
