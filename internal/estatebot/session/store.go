package session

import "context"

// Store is the session store contract. Implementations must create a fresh
// session on first access for an unknown user identifier (no hidden
// default semantics elsewhere: creation happens here and only here).
type Store interface {
	// Get returns the session for a user, creating it when absent.
	Get(ctx context.Context, userID string) (*Session, error)
	// Save persists the session after the engine mutated it.
	Save(ctx context.Context, s *Session) error
	// Reset wipes the session entirely; the next Get starts from scratch.
	Reset(ctx context.Context, userID string) error
}
