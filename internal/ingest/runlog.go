package ingest

import (
	"context"
	"fmt"

	"github.com/ppedin/wikibase-api/internal/journal"
)

// runLog writes the journal events of one ingest run. Only the start event
// can fail the run; later journal errors are logged.
type runLog struct {
	p            *Pipeline
	runID        string
	label        string
	resourceType string
	digest       string

	statementFailure bool
}

func (r *runLog) event(kind journal.Kind) journal.Event {
	return journal.Event{
		RunID:        r.runID,
		Kind:         kind,
		Label:        r.label,
		ResourceType: r.resourceType,
		Digest:       r.digest,
	}
}

func (r *runLog) start(ctx context.Context) error {
	if err := r.p.journal.Record(ctx, r.event(journal.KindStarted)); err != nil {
		return fmt.Errorf("journal run %s: %w", r.runID, err)
	}
	return nil
}

func (r *runLog) record(ctx context.Context, e journal.Event) {
	if err := r.p.journal.Record(ctx, e); err != nil {
		r.p.logger.Error("journal run %s: %v", r.runID, err)
	}
}

func (r *runLog) itemCreated(ctx context.Context, itemID string) {
	e := r.event(journal.KindItemCreated)
	e.ItemID = itemID
	r.record(ctx, e)
}

func (r *runLog) statementAdded(ctx context.Context, itemID string, st Statement) {
	e := r.event(journal.KindStatementAdded)
	e.ItemID = itemID
	e.Property = st.Property
	e.Value = st.Value.Content
	r.record(ctx, e)
}

func (r *runLog) statementFailed(ctx context.Context, itemID string, st Statement, err error) {
	e := r.event(journal.KindFailed)
	e.ItemID = itemID
	e.Property = st.Property
	e.Value = st.Value.Content
	e.Error = err.Error()
	r.record(ctx, e)
	r.statementFailure = true
}

// failed records a run failure unless statementFailed already did.
func (r *runLog) failed(ctx context.Context, itemID string, err error) {
	if r.statementFailure {
		return
	}
	e := r.event(journal.KindFailed)
	e.ItemID = itemID
	e.Error = err.Error()
	r.record(ctx, e)
}

func (r *runLog) completed(ctx context.Context, itemID string) {
	e := r.event(journal.KindCompleted)
	e.ItemID = itemID
	r.record(ctx, e)
}
