package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/tui"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the ingest journal",
}

var journalShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print journal events, optionally of a single run",
	Long: `Show prints what ingest runs did: the item each created, every statement
added and the failure that stopped a run. Use the run id printed by ingest
(or returned in the X-Run-ID header) to find the items a partial run left
behind.

Examples:
  wikibase-api journal show
  wikibase-api journal show 0f8e7b2c-... --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournalShow,
}

var journalFlags struct {
	json bool
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalShowCmd.Flags().BoolVar(&journalFlags.json, "json", false, "Print events as JSON")
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	runID := ""
	if len(args) == 1 {
		runID = args[0]
	}

	events, err := readJournal(commandContext(cmd), a.cfg.JournalConfig(), runID)
	if err != nil {
		return err
	}
	if runID != "" && len(events) == 0 {
		return fmt.Errorf("no journal events for run %s", runID)
	}

	if journalFlags.json {
		if events == nil {
			events = []journal.Event{}
		}
		return writeJSON(cmd.OutOrStdout(), events)
	}
	tui.NewPrinter(cmd.OutOrStdout()).Events(events)
	return nil
}

// readJournal reads events from the configured backend without creating it.
func readJournal(ctx context.Context, cfg journal.Config, runID string) ([]journal.Event, error) {
	switch cfg.Driver {
	case journal.DriverNone:
		return nil, fmt.Errorf("%w: journal driver is none; nothing is recorded", wbapi.ErrInvalidConfig)
	case journal.DriverPostgres:
		j, err := journal.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		defer j.Close()
		return j.Run(ctx, runID)
	default:
		path := cfg.Path
		if path == "" {
			path = wbapi.DefaultJournalPath
		}
		events, err := journal.ReadFile(path, runID)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return events, err
	}
}
