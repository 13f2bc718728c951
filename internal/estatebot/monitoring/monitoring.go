// Package monitoring keeps lightweight process counters for the
// /monitor/metrics endpoint.
package monitoring

import (
	"sync/atomic"
	"time"
)

// Metrics holds monotonically increasing dialogue counters. All methods
// are safe for concurrent use.
type Metrics struct {
	startedAt          time.Time
	messagesHandled    atomic.Int64
	generationFailures atomic.Int64
	leadsSaved         atomic.Int64
	activeSessions     atomic.Int64
}

func New() *Metrics {
	return &Metrics{startedAt: time.Now()}
}

func (m *Metrics) MessageHandled() { m.messagesHandled.Add(1) }

func (m *Metrics) GenerationFailed() { m.generationFailures.Add(1) }

func (m *Metrics) LeadSaved() { m.leadsSaved.Add(1) }

func (m *Metrics) SessionOpened() { m.activeSessions.Add(1) }

func (m *Metrics) SessionClosed() { m.activeSessions.Add(-1) }

// Snapshot is the wire form served by the metrics endpoint.
type Snapshot struct {
	UptimeSeconds      int64 `json:"uptime_seconds"`
	MessagesHandled    int64 `json:"messages_handled"`
	GenerationFailures int64 `json:"generation_failures"`
	LeadsSaved         int64 `json:"leads_saved"`
	ActiveSessions     int64 `json:"active_sessions"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:      int64(time.Since(m.startedAt).Seconds()),
		MessagesHandled:    m.messagesHandled.Load(),
		GenerationFailures: m.generationFailures.Load(),
		LeadsSaved:         m.leadsSaved.Load(),
		ActiveSessions:     m.activeSessions.Load(),
	}
}
