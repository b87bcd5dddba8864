package ingest

import (
	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/internal/wikibase"
)

// Ingest outcomes reported to the Observer.
const (
	OutcomeCreated = "created"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Request is one record to ingest.
type Request struct {
	Content      []byte
	ResourceType string
	Label        string // label of the item to create
	Language     string // label language; the pipeline default when empty
	Description  string // optional item description
}

// Statement is one planned property/value write.
type Statement struct {
	Field    detect.Field   `json:"field"`
	Property string         `json:"property"`
	Datatype string         `json:"datatype"`
	Detected string         `json:"detected"` // value as found in the record
	Value    wikibase.Value `json:"-"`
}

// Outcome reports what an ingest run did.
type Outcome struct {
	RunID      string
	Digest     checksum.Digest
	Result     validation.Result
	ItemID     string      // empty unless the item was created
	ExistingID string      // item already carrying the label, set with ErrItemExists
	Planned    []Statement // in catalog order
	Written    int         // statements accepted before any failure
	Detections detect.Detection
}

// Created reports whether the run created an item.
func (o Outcome) Created() bool {
	return o.ItemID != ""
}
