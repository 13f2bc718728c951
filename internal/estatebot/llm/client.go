// Package llm abstracts the external text-generation service.
package llm

import "context"

// Role values for generation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the ordered prompt passed to the service.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Client generates a reply from an ordered message list. Implementations
// own their retry/timeout policy. On failure Generate returns a non-nil
// error together with a user-facing apology string, so callers always have
// something presentable to send; callers must not treat apology text as a
// model reply (in particular, no intent detection on it).
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
