package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/internal/validation"
)

// Printer renders command reports. Colors are used only when the writer is
// a terminal that supports them.
type Printer struct {
	w io.Writer
	s styles
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, s: newStyles(lipgloss.NewRenderer(w))}
}

// PropertyRow is one line of the property mapping report.
type PropertyRow struct {
	Field    detect.Field
	Property string
	Datatype string // remote datatype; empty when not fetched
	Err      error  // lookup failure, if any
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Validation prints the result for one record.
func (p *Printer) Validation(path string, res validation.Result) {
	if res.Valid() {
		p.printf("%s %s\n", p.s.success.Render(SymbolCheck), path)
		return
	}
	p.printf("%s %s\n", p.s.failure.Render(SymbolCross), path)
	for _, e := range res.Errors() {
		where := ""
		if e.Path != "" {
			where = p.s.muted.Render(" at " + e.Path)
		}
		p.printf("    %s %s%s\n", SymbolBullet, e.Message, where)
	}
}

// ValidationError prints a record that could not be validated at all.
func (p *Printer) ValidationError(path string, err error) {
	p.printf("%s %s: %v\n", p.s.warning.Render(SymbolWarning), path, err)
}

// Summary prints the totals of a batch.
func (p *Printer) Summary(total, invalid, failed int) {
	valid := total - invalid - failed
	parts := []string{p.s.success.Render(fmt.Sprintf("%d valid", valid))}
	if invalid > 0 {
		parts = append(parts, p.s.failure.Render(fmt.Sprintf("%d invalid", invalid)))
	}
	if failed > 0 {
		parts = append(parts, p.s.warning.Render(fmt.Sprintf("%d failed", failed)))
	}
	p.printf("\n%d records: %s\n", total, strings.Join(parts, ", "))
}

// Detection prints the values detected for each field, in field order.
// Fields with nothing detected are listed as empty.
func (p *Printer) Detection(path string, fields []detect.Field, props schema.PropertyMap, d detect.Detection) {
	p.printf("%s\n", p.s.title.Render(path))
	width := fieldWidth(fields)
	for _, f := range fields {
		label := p.s.key.Render(fmt.Sprintf("%-*s", width, f))
		prop := ""
		if id, ok := props.Property(f); ok {
			prop = p.s.muted.Render(fmt.Sprintf(" (%s)", id))
		}
		values := d[f]
		if values.Empty() {
			p.printf("  %s%s %s\n", label, prop, p.s.muted.Render("-"))
			continue
		}
		p.printf("  %s%s %s\n", label, prop, p.s.value.Render(values[0]))
		for _, v := range values[1:] {
			p.printf("  %*s %s\n", width+lipgloss.Width(prop), "", p.s.value.Render(v))
		}
	}
}

// Schemas prints the registered resource types with their mandatory fields.
func (p *Printer) Schemas(entries []schema.Entry) {
	for _, e := range entries {
		p.printf("%s  %s\n", p.s.title.Render(string(e.Type)), p.s.muted.Render(e.Description))
		mandatory := make([]string, 0, len(e.Mandatory))
		for _, f := range e.Mandatory {
			mandatory = append(mandatory, f.String())
		}
		p.printf("  %s %s\n", p.s.key.Render("mandatory:"), strings.Join(mandatory, ", "))
		p.printf("  %s %d\n", p.s.key.Render("fields:"), len(e.Fields))
	}
}

// Properties prints the field to property mapping.
func (p *Printer) Properties(rows []PropertyRow) {
	fields := make([]detect.Field, 0, len(rows))
	for _, r := range rows {
		fields = append(fields, r.Field)
	}
	width := fieldWidth(fields)
	for _, r := range rows {
		line := fmt.Sprintf("  %s %s %-5s", p.s.key.Render(fmt.Sprintf("%-*s", width, r.Field)), SymbolArrowRight, r.Property)
		switch {
		case r.Err != nil:
			line += " " + p.s.failure.Render(r.Err.Error())
		case r.Datatype != "":
			line += " " + p.s.muted.Render(r.Datatype)
		}
		p.printf("%s\n", line)
	}
}

// Plan prints the statements an ingest would write.
func (p *Printer) Plan(statements []ingest.Statement) {
	if len(statements) == 0 {
		p.printf("  %s\n", p.s.muted.Render("no statements"))
		return
	}
	for _, st := range statements {
		target := ""
		if st.Value.Content != st.Detected {
			target = p.s.muted.Render(fmt.Sprintf(" %s %s", SymbolArrowRight, st.Value.Content))
		}
		p.printf("  %s %-5s %q%s\n", SymbolBullet, st.Property, st.Detected, target)
	}
}

// Outcome prints the result of an ingest run.
func (p *Printer) Outcome(path string, out ingest.Outcome) {
	if !out.Result.Valid() {
		p.Validation(path, out.Result)
		return
	}
	p.printf("%s %s %s %s (%d/%d statements, run %s)\n",
		p.s.success.Render(SymbolCheck), path, SymbolArrowRight,
		p.s.value.Render(out.ItemID), out.Written, len(out.Planned), out.RunID)
}

// Events prints journal events in order.
func (p *Printer) Events(events []journal.Event) {
	for _, e := range events {
		line := fmt.Sprintf("%s %s %-16s", p.s.muted.Render(e.Time.Format("2006-01-02 15:04:05")), e.RunID, e.Kind)
		switch e.Kind {
		case journal.KindStarted:
			line += fmt.Sprintf(" %q (%s)", e.Label, e.ResourceType)
		case journal.KindItemCreated, journal.KindCompleted:
			line += " " + e.ItemID
		case journal.KindStatementAdded:
			line += fmt.Sprintf(" %s %s=%q", e.ItemID, e.Property, e.Value)
		case journal.KindFailed:
			line += " " + p.s.failure.Render(e.Error)
		}
		p.printf("%s\n", strings.TrimRight(line, " "))
	}
}

func fieldWidth(fields []detect.Field) int {
	w := 0
	for _, f := range fields {
		if len(f) > w {
			w = len(f)
		}
	}
	return w
}
