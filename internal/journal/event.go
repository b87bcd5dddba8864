package journal

import (
	"context"
	"time"
)

// Kind identifies what an event records.
type Kind string

const (
	KindStarted        Kind = "started"
	KindItemCreated    Kind = "item_created"
	KindStatementAdded Kind = "statement_added"
	KindFailed         Kind = "failed"
	KindCompleted      Kind = "completed"
)

// Event is one journal entry. Fields that do not apply to a kind are empty.
type Event struct {
	RunID        string    `json:"run_id"`
	Time         time.Time `json:"time"`
	Kind         Kind      `json:"event"`
	Label        string    `json:"label,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	Digest       string    `json:"sha256,omitempty"`
	ItemID       string    `json:"item_id,omitempty"`
	Property     string    `json:"property,omitempty"`
	Value        string    `json:"value,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Journal appends events. Implementations are safe for concurrent use.
type Journal interface {
	Record(ctx context.Context, e Event) error
	Close() error
}

// Reader returns the events of one run in the order they were recorded.
// An empty run id selects every run.
type Reader interface {
	Run(ctx context.Context, runID string) ([]Event, error)
}

// stamp fills the event time when the caller left it zero.
func stamp(e Event) Event {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	return e
}
