// Package mock provides a scripted llm.Client for tests and local runs
// without YandexGPT credentials.
package mock

import (
	"context"
	"sync"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/llm"
)

// Mock replays scripted replies in order and records every prompt it saw.
type Mock struct {
	mu      sync.Mutex
	replies []string
	idx     int

	// Err, when set, is returned with every reply to simulate a degraded
	// generation service.
	Err error

	// Calls holds the message lists passed to Generate, in order.
	Calls [][]llm.Message
}

// New creates a mock that cycles through the given replies.
func New(replies ...string) *Mock {
	if len(replies) == 0 {
		replies = []string{"Здравствуйте! Чем могу помочь?"}
	}
	return &Mock{replies: replies}
}

func (m *Mock) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]llm.Message, len(messages))
	copy(copied, messages)
	m.Calls = append(m.Calls, copied)

	reply := m.replies[m.idx%len(m.replies)]
	m.idx++
	return reply, m.Err
}
