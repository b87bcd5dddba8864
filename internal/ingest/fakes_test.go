package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/wikibase"
)

type statementCall struct {
	itemID   string
	property string
	value    wikibase.Value
}

type fakeKB struct {
	mu sync.Mutex

	connErr     error
	searchErr   error
	items       map[string]string // label -> id
	datatypes   map[string]string // property -> datatype
	createErr   error
	createdID   string
	rejectAfter int // reject the statement after this many successes; 0 disables
	rejectErr   error

	calls      []string
	created    []wikibase.ItemSpec
	statements []statementCall
}

func newFakeKB() *fakeKB {
	return &fakeKB{
		items:     map[string]string{},
		datatypes: map[string]string{},
		createdID: "Q100",
	}
}

func (f *fakeKB) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeKB) CheckConnection(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("check")
	return f.connErr
}

func (f *fakeKB) FindItemByLabel(_ context.Context, label, language string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("search:" + label + "@" + language)
	if f.searchErr != nil {
		return "", false, f.searchErr
	}
	id, ok := f.items[label]
	return id, ok, nil
}

func (f *fakeKB) CreateItem(_ context.Context, spec wikibase.ItemSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create:" + spec.Label)
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, spec)
	return f.createdID, nil
}

func (f *fakeKB) PropertyDatatype(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("datatype:" + id)
	dt, ok := f.datatypes[id]
	if !ok {
		return "", fmt.Errorf("get property %s: unexpected status 404", id)
	}
	return dt, nil
}

func (f *fakeKB) AddStatement(_ context.Context, itemID, propertyID string, v wikibase.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("statement:" + propertyID)
	if f.rejectAfter > 0 && len(f.statements) == f.rejectAfter {
		if f.rejectErr != nil {
			return f.rejectErr
		}
		return errors.New("add statement: unexpected status 400")
	}
	f.statements = append(f.statements, statementCall{itemID: itemID, property: propertyID, value: v})
	return nil
}

func (f *fakeKB) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

type countingObserver struct {
	mu          sync.Mutex
	validations map[bool]int
	ingests     map[string]int
	statements  map[bool]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		validations: map[bool]int{},
		ingests:     map[string]int{},
		statements:  map[bool]int{},
	}
}

func (o *countingObserver) ObserveValidation(_ string, valid bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.validations[valid]++
}

func (o *countingObserver) ObserveIngest(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ingests[outcome]++
}

func (o *countingObserver) ObserveStatement(_ string, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statements[ok]++
}

type failingJournal struct{}

func (failingJournal) Record(context.Context, journal.Event) error { return errors.New("disk full") }
func (failingJournal) Close() error                                { return nil }

func kinds(events []journal.Event) []journal.Kind {
	out := make([]journal.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
