package ingest

import (
	"context"
	"fmt"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/internal/wikibase"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// plan resolves every detected value into a statement before anything is
// written. Datatypes are fetched once per property. Values of item-typed
// properties are labels and are resolved to item ids.
func (p *Pipeline) plan(ctx context.Context, entry schema.Entry, detections detect.Detection, lang string) ([]Statement, error) {
	props := p.registry.Properties()
	datatypes := make(map[string]string)
	var planned []Statement

	for _, f := range entry.Fields {
		values := detections[f]
		if values.Empty() {
			continue
		}
		property, ok := props.Property(f)
		if !ok {
			continue
		}

		datatype, ok := datatypes[property]
		if !ok {
			dt, err := p.kb.PropertyDatatype(ctx, property)
			if err != nil {
				return nil, fmt.Errorf("%w: %s (%s): %w", wbapi.ErrPropertyInfoUnavailable, property, f, err)
			}
			datatype = dt
			datatypes[property] = dt
		}
		kind := wikibase.KindForDatatype(datatype)

		for _, v := range values {
			content := v
			if kind == wikibase.ValueEntityID {
				id, err := p.resolveItem(ctx, v, lang)
				if err != nil {
					return nil, fmt.Errorf("%s (%s): %w", property, f, err)
				}
				content = id
			}
			planned = append(planned, Statement{
				Field:    f,
				Property: property,
				Datatype: datatype,
				Detected: v,
				Value:    wikibase.Value{Kind: kind, Content: content},
			})
		}
	}
	return planned, nil
}

func (p *Pipeline) resolveItem(ctx context.Context, label, lang string) (string, error) {
	id, found, err := p.kb.FindItemByLabel(ctx, label, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", wbapi.ErrReferencedItemNotFound, label, err)
	}
	if !found {
		return "", fmt.Errorf("%w: no item labelled %q", wbapi.ErrReferencedItemNotFound, label)
	}
	return id, nil
}
