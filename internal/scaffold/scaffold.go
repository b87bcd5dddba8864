// Package scaffold generates skeleton records for a resource type.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// TEINamespace is the default namespace of generated records.
const TEINamespace = "http://www.tei-c.org/ns/1.0"

// ErrFileExists is returned by WriteFile when the target already exists.
var ErrFileExists = errors.New("file already exists")

// Options controls the generated skeleton.
type Options struct {
	// Namespace is declared on the root element. Empty produces an
	// un-namespaced record.
	Namespace string
	// Full emits every field of the resource type; otherwise only the
	// mandatory ones.
	Full bool
}

// Scaffolder builds skeleton records that pass validation for their type.
type Scaffolder struct {
	registry *schema.Registry
	logger   wbapi.Logger
}

// NewScaffolder creates a scaffolder. Panics if registry or logger is nil.
func NewScaffolder(registry *schema.Registry, logger wbapi.Logger) *Scaffolder {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{registry: registry, logger: logger}
}

// Build returns the skeleton document for resourceType.
func (s *Scaffolder) Build(resourceType string, opts Options) (*etree.Document, error) {
	entry, err := s.registry.Lookup(resourceType)
	if err != nil {
		return nil, err
	}

	fields := entry.Mandatory
	if opts.Full {
		fields = entry.Fields
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateComment(fmt.Sprintf(" %s skeleton: replace the bracketed placeholders ", entry.Type))

	root := doc.CreateElement("TEI")
	if opts.Namespace != "" {
		root.CreateAttr("xmlns", opts.Namespace)
	}
	fileDesc := root.CreateElement("teiHeader").CreateElement("fileDesc")
	fileDesc.CreateElement("titleStmt")

	for _, f := range fields {
		places, ok := skeleton[f]
		if !ok {
			return nil, fmt.Errorf("no skeleton for field %q", f)
		}
		for _, p := range places {
			el := fileDesc
			for _, st := range p.path {
				el = child(el, st)
			}
			if p.text != "" {
				el.SetText(p.text)
			}
		}
		s.logger.Verbose("Added %s", f)
	}

	// Required by TEI; detection never reads it.
	fileDesc.CreateElement("sourceDesc").CreateElement("p").SetText("Born digital.")

	doc.Indent(2)
	return doc, nil
}

// Write writes the skeleton for resourceType to w.
func (s *Scaffolder) Write(w io.Writer, resourceType string, opts Options) error {
	doc, err := s.Build(resourceType, opts)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

// WriteFile writes the skeleton to path. An existing file is never overwritten.
func (s *Scaffolder) WriteFile(path, resourceType string, opts Options) error {
	doc, err := s.Build(resourceType, opts)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Verbose("Wrote %s skeleton to %s", resourceType, path)
	return nil
}

// child returns the first child of parent matching st, creating it if needed.
func child(parent *etree.Element, st step) *etree.Element {
	for _, c := range parent.ChildElements() {
		if c.Tag == st.tag && c.SelectAttrValue("type", "") == st.typ {
			return c
		}
	}
	el := parent.CreateElement(st.tag)
	if st.typ != "" {
		el.CreateAttr("type", st.typ)
	}
	return el
}

// placeholder is the text put where a field value goes.
func placeholder(f detect.Field) string {
	return "[" + f.String() + "]"
}
