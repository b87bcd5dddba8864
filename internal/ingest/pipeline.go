package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/internal/wikibase"
	"github.com/ppedin/wikibase-api/internal/xmldoc"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// Pipeline validates records and ingests them into a knowledge base.
// Validate and Detect are safe for concurrent use. Ingest is safe for
// concurrent use when the KnowledgeBase and Journal are.
type Pipeline struct {
	registry *schema.Registry
	checker  *xmldoc.Checker
	logger   wbapi.Logger
	kb       KnowledgeBase
	journal  journal.Journal
	observer Observer
	digests  checksum.SHA256
	language string
	newRunID func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithKnowledgeBase enables Ingest. Without it only Validate and Detect work.
func WithKnowledgeBase(kb KnowledgeBase) Option {
	return func(p *Pipeline) {
		p.kb = kb
	}
}

// WithJournal records every ingest run. The default discards events.
func WithJournal(j journal.Journal) Option {
	return func(p *Pipeline) {
		p.journal = j
	}
}

// WithObserver receives validation and ingest counters.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// WithLanguage sets the label language used when a request leaves it empty.
func WithLanguage(lang string) Option {
	return func(p *Pipeline) {
		p.language = lang
	}
}

// WithRunIDFunc replaces the run id generator.
func WithRunIDFunc(f func() string) Option {
	return func(p *Pipeline) {
		p.newRunID = f
	}
}

// NewPipeline creates a pipeline. Panics if registry, checker or logger is nil.
func NewPipeline(registry *schema.Registry, checker *xmldoc.Checker, logger wbapi.Logger, opts ...Option) *Pipeline {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if checker == nil {
		panic("checker cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	p := &Pipeline{
		registry: registry,
		checker:  checker,
		logger:   logger,
		journal:  journal.Null{},
		observer: nopObserver{},
		digests:  checksum.New(),
		language: wbapi.DefaultLanguage,
		newRunID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the schema registry the pipeline validates against.
func (p *Pipeline) Registry() *schema.Registry {
	return p.registry
}

// Validate checks content against resourceType. An unknown resource type is
// an error and nothing is parsed. A malformed document yields its syntax
// error as the only diagnostic and the registry is not consulted.
func (p *Pipeline) Validate(content []byte, resourceType string) (validation.Result, *xmldoc.Document, error) {
	if _, err := p.registry.Lookup(resourceType); err != nil {
		return validation.Result{}, nil, err
	}

	result, doc := p.checker.Check(content)
	if !result.Valid() {
		p.observer.ObserveValidation(resourceType, false)
		return result, nil, nil
	}

	result, err := p.registry.Validate(doc, resourceType)
	if err != nil {
		return validation.Result{}, nil, err
	}
	p.observer.ObserveValidation(resourceType, result.Valid())
	return result, doc, nil
}

// Detect validates content and, when valid, sweeps every field of the
// resource type. No remote calls are made.
func (p *Pipeline) Detect(content []byte, resourceType string) (detect.Detection, validation.Result, error) {
	result, doc, err := p.Validate(content, resourceType)
	if err != nil || !result.Valid() {
		return nil, result, err
	}
	entry, err := p.registry.Lookup(resourceType)
	if err != nil {
		return nil, result, err
	}
	return p.registry.Catalog().Sweep(doc, entry.Fields...), result, nil
}

// Ingest validates req.Content and mirrors its detected fields into the
// knowledge base as a new item with one statement per value.
//
// A content failure returns an Outcome carrying the invalid result and a nil
// error. Remote failures abort the run and wrap one of ErrConnectionFailed,
// ErrItemExists, ErrPropertyInfoUnavailable, ErrReferencedItemNotFound,
// ErrItemCreationFailed or ErrStatementRejected. Nothing is retried.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (Outcome, error) {
	if p.kb == nil {
		return Outcome{}, errors.New("ingest: no knowledge base configured")
	}
	if strings.TrimSpace(req.Label) == "" {
		return Outcome{}, fmt.Errorf("%w: label is required", wbapi.ErrInvalidRequest)
	}
	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	out := Outcome{Digest: p.digests.Digest(req.Content)}

	result, doc, err := p.Validate(req.Content, req.ResourceType)
	if err != nil {
		return out, err
	}
	out.Result = result
	if !result.Valid() {
		p.observer.ObserveIngest(OutcomeInvalid)
		return out, nil
	}

	entry, err := p.registry.Lookup(req.ResourceType)
	if err != nil {
		return out, err
	}
	out.Detections = p.registry.Catalog().Sweep(doc, p.mappedFields(entry)...)

	out.RunID = p.newRunID()
	run := &runLog{
		p:            p,
		runID:        out.RunID,
		label:        req.Label,
		resourceType: req.ResourceType,
		digest:       out.Digest.Raw,
	}
	if err := run.start(ctx); err != nil {
		return out, err
	}
	p.logger.Verbose("run %s: %d fields detected in %d bytes for %q", out.RunID, len(out.Detections), doc.Size(), req.Label)

	if err := p.apply(ctx, run, entry, lang, req, &out); err != nil {
		p.observer.ObserveIngest(OutcomeFailed)
		run.failed(ctx, out.ItemID, err)
		return out, err
	}

	p.observer.ObserveIngest(OutcomeCreated)
	run.completed(ctx, out.ItemID)
	p.logger.Info("Created item %s with %d statements", out.ItemID, out.Written)
	return out, nil
}

func (p *Pipeline) apply(ctx context.Context, run *runLog, entry schema.Entry, lang string, req Request, out *Outcome) error {
	if err := p.kb.CheckConnection(ctx); err != nil {
		if errors.Is(err, wbapi.ErrConnectionFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", wbapi.ErrConnectionFailed, err)
	}

	existing, found, err := p.kb.FindItemByLabel(ctx, req.Label, lang)
	if err != nil {
		return fmt.Errorf("%w: search label %q: %w", wbapi.ErrConnectionFailed, req.Label, err)
	}
	if found {
		out.ExistingID = existing
		return fmt.Errorf("%w: item with the given label already exists (item %s)", wbapi.ErrItemExists, existing)
	}

	planned, err := p.plan(ctx, entry, out.Detections, lang)
	if err != nil {
		return err
	}
	out.Planned = planned

	itemID, err := p.kb.CreateItem(ctx, wikibase.ItemSpec{
		Label:       req.Label,
		Language:    lang,
		Description: req.Description,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", wbapi.ErrItemCreationFailed, err)
	}
	out.ItemID = itemID
	run.itemCreated(ctx, itemID)

	for _, st := range planned {
		if err := p.kb.AddStatement(ctx, itemID, st.Property, st.Value); err != nil {
			p.observer.ObserveStatement(st.Property, false)
			run.statementFailed(ctx, itemID, st, err)
			return fmt.Errorf("%w: item %s, %s=%q: %w", wbapi.ErrStatementRejected, itemID, st.Property, st.Detected, err)
		}
		p.observer.ObserveStatement(st.Property, true)
		run.statementAdded(ctx, itemID, st)
		out.Written++
	}
	return nil
}

// mappedFields returns the entry's fields that have a property mapping.
func (p *Pipeline) mappedFields(entry schema.Entry) []detect.Field {
	props := p.registry.Properties()
	fields := make([]detect.Field, 0, len(entry.Fields))
	for _, f := range entry.Fields {
		if _, ok := props.Property(f); ok {
			fields = append(fields, f)
		}
	}
	return fields
}
