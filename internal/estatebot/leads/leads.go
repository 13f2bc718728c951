// Package leads persists contact records collected during the
// contact-collection sub-dialogue.
package leads

import (
	"context"
	"errors"
	"time"
)

// ErrSaveFailed reports that a backend refused or failed to persist a lead.
var ErrSaveFailed = errors.New("lead save failed")

// Lead is one persisted contact record. Created exactly once per successful
// extraction; never mutated or deleted by the bot.
type Lead struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Context   string    `json:"context"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is the lead persistence contract. A non-nil error leaves the
// dialogue in the contact-collection mode so the user can retry.
type Store interface {
	Save(ctx context.Context, lead Lead) error
	List(ctx context.Context) ([]Lead, error)
}
