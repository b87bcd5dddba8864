package journal

import (
	"context"
	"sync"
)

// Null discards events.
type Null struct{}

// Record implements Journal.
func (Null) Record(context.Context, Event) error { return nil }

// Close implements Journal.
func (Null) Close() error { return nil }

// Memory keeps events in memory.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Record implements Journal.
func (m *Memory) Record(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stamp(e))
	return nil
}

// Close implements Journal.
func (m *Memory) Close() error { return nil }

// Events returns a copy of everything recorded.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Run implements Reader.
func (m *Memory) Run(_ context.Context, runID string) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if runID == "" || e.RunID == runID {
			out = append(out, e)
		}
	}
	return out, nil
}
