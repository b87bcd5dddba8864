package ingest

import (
	"context"

	"github.com/ppedin/wikibase-api/internal/wikibase"
)

// KnowledgeBase is the remote store records are mirrored into.
// *wikibase.Client implements it.
type KnowledgeBase interface {
	CheckConnection(ctx context.Context) error
	FindItemByLabel(ctx context.Context, label, language string) (id string, found bool, err error)
	CreateItem(ctx context.Context, spec wikibase.ItemSpec) (string, error)
	PropertyDatatype(ctx context.Context, id string) (string, error)
	AddStatement(ctx context.Context, itemID, propertyID string, v wikibase.Value) error
}

// Observer receives pipeline counters. *metrics.Metrics implements it.
type Observer interface {
	ObserveValidation(resourceType string, valid bool)
	ObserveIngest(outcome string)
	ObserveStatement(property string, ok bool)
}

type nopObserver struct{}

func (nopObserver) ObserveValidation(string, bool) {}
func (nopObserver) ObserveIngest(string)           {}
func (nopObserver) ObserveStatement(string, bool)  {}
