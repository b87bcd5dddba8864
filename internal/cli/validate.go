package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/files/scanner"
	"github.com/ppedin/wikibase-api/internal/files/watcher"
	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/tui"
	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path|dir|glob>...",
	Short: "Check records for well-formedness and mandatory fields",
	Long: `Validate checks each record without contacting Wikibase.

Arguments may be files, directories (every .xml file below them, hidden
directories skipped) or doublestar patterns such as 'archive/**/*.xml'.
Quote patterns so the shell does not expand them.

Examples:
  wikibase-api validate scheda.xml
  wikibase-api validate ./records --json
  wikibase-api validate 'records/**/*.xml' --watch`,
	Args: RequireRecordPaths,
	RunE: runValidate,
}

var validateFlags struct {
	resourceType string
	json         bool
	watch        bool
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addTypeFlag(validateCmd, &validateFlags.resourceType)
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Print results as JSON")
	validateCmd.Flags().BoolVarP(&validateFlags.watch, "watch", "w", false, "Revalidate records when they change (Ctrl+C to stop)")
}

// recordReport is the JSON form of one validated record.
type recordReport struct {
	Path   string                     `json:"path"`
	SHA256 string                     `json:"sha256,omitempty"`
	Valid  bool                       `json:"valid"`
	Errors []validation.ErrorResponse `json:"errors"`
	Error  string                     `json:"error,omitempty"`
}

func (r recordReport) failed() bool {
	return r.Error != ""
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.registry.Lookup(validateFlags.resourceType); err != nil {
		return err
	}

	p := a.pipeline()
	sc := scanner.NewOSScanner(checksum.New())
	records, err := sc.Scan(args...)
	if err != nil {
		return err
	}
	a.logger.Verbose("Validating %d records as %s", len(records), validateFlags.resourceType)

	out := cmd.OutOrStdout()
	reports := validateRecords(p, records, validateFlags.resourceType)
	if err := printReports(out, reports, true); err != nil {
		return err
	}

	if validateFlags.watch {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchRecords(ctx, a.logger, p, sc, args, records, out)
	}

	bad := 0
	for _, r := range reports {
		if !r.Valid {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d records", wbapi.ErrValidationFailed, bad, len(reports))
	}
	return nil
}

func validateRecords(p *ingest.Pipeline, records []scanner.Record, resourceType string) []recordReport {
	reports := make([]recordReport, 0, len(records))
	for _, rec := range records {
		r := recordReport{Path: rec.Path, SHA256: rec.Digest.Raw}
		result, _, err := p.Validate(rec.Content, resourceType)
		if err != nil {
			r.Error = err.Error()
			r.Errors = []validation.ErrorResponse{}
		} else {
			resp := result.Response()
			r.Valid, r.Errors = resp.Valid, resp.Errors
		}
		reports = append(reports, r)
	}
	return reports
}

func printReports(w io.Writer, reports []recordReport, summary bool) error {
	if validateFlags.json {
		return writeJSON(w, reports)
	}

	printer := tui.NewPrinter(w)
	invalid, failed := 0, 0
	for _, r := range reports {
		switch {
		case r.failed():
			failed++
			printer.ValidationError(r.Path, fmt.Errorf("%s", r.Error))
		default:
			if !r.Valid {
				invalid++
			}
			printer.Validation(r.Path, toResult(r))
		}
	}
	if summary && len(reports) > 1 {
		printer.Summary(len(reports), invalid, failed)
	}
	return nil
}

// toResult rebuilds a Result from its transport form for printing.
func toResult(r recordReport) validation.Result {
	var b validation.Builder
	for _, e := range r.Errors {
		b.Add(validation.FieldError{FieldID: e.FieldID, Message: e.Message, Path: e.Path})
	}
	return b.Result()
}

// watchRecords revalidates records matched by args whenever they change.
func watchRecords(ctx context.Context, logger wbapi.Logger, p *ingest.Pipeline, sc *scanner.Scanner, args []string, initial []scanner.Record, out io.Writer) error {
	roots, err := sc.Roots(args...)
	if err != nil {
		return err
	}
	w, err := watcher.New(roots, checksum.New(), logger, watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	for _, rec := range initial {
		w.Prime(rec.Path, rec.Digest.Raw)
	}
	logger.Info("Watching %s (Ctrl+C to stop)", strings.Join(roots, ", "))

	return w.Run(ctx, func(changed []string) {
		paths, err := matching(sc, args, changed)
		if err != nil {
			logger.Error("%v", err)
			return
		}
		if len(paths) == 0 {
			return
		}
		records, err := sc.Scan(paths...)
		if err != nil {
			logger.Error("%v", err)
			return
		}
		if err := printReports(out, validateRecords(p, records, validateFlags.resourceType), false); err != nil {
			logger.Error("%v", err)
		}
	})
}

// matching keeps the changed paths that args still select.
func matching(sc *scanner.Scanner, args, changed []string) ([]string, error) {
	current, err := sc.Expand(args...)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(current))
	for _, p := range current {
		selected[filepath.Clean(p)] = true
	}
	var out []string
	for _, p := range changed {
		if selected[filepath.Clean(p)] {
			out = append(out, p)
		}
	}
	return out, nil
}
