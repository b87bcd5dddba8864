package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/journal"
	"github.com/ppedin/wikibase-api/internal/tui"
	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <record.xml>",
	Short: "Create a Wikibase item from a record",
	Long: `Ingest validates a record, then creates one Wikibase item with the given
label and adds a statement for every detected field value.

Nothing is written when the record is invalid or an item with the label
already exists. Statements are added one by one; when one is rejected the run
stops and the item keeps the statements added so far. Every run is recorded
in the journal (see 'wikibase-api journal show').

In an interactive terminal the detected fields are shown and confirmation is
requested first; --yes skips the prompt.

Examples:
  wikibase-api ingest scheda.xml --label "Divina Commedia"
  wikibase-api ingest scheda.xml --label "Divina Commedia" --yes --json`,
	Args:              RequireRecordFile,
	ValidArgsFunction: completeRecordFile,
	RunE:              runIngest,
}

var ingestFlags struct {
	resourceType string
	label        string
	language     string
	description  string
	yes          bool
	json         bool
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	addTypeFlag(ingestCmd, &ingestFlags.resourceType)
	ingestCmd.Flags().StringVarP(&ingestFlags.label, "label", "l", "", "Label of the item to create (required)")
	ingestCmd.Flags().StringVar(&ingestFlags.language, "language", "", "Label language (default: wikibase.language)")
	ingestCmd.Flags().StringVar(&ingestFlags.description, "description", "", "Item description")
	ingestCmd.Flags().BoolVarP(&ingestFlags.yes, "yes", "y", false, "Skip the confirmation prompt")
	ingestCmd.Flags().BoolVar(&ingestFlags.json, "json", false, "Print the outcome as JSON")
	_ = ingestCmd.MarkFlagRequired("label")
}

// ingestReport is the JSON form of an ingest outcome.
type ingestReport struct {
	Path       string                     `json:"path"`
	SHA256     string                     `json:"sha256"`
	RunID      string                     `json:"run_id,omitempty"`
	ItemID     string                     `json:"item_id,omitempty"`
	Valid      bool                       `json:"valid"`
	Errors     []validation.ErrorResponse `json:"errors"`
	Statements []ingest.Statement         `json:"statements"`
	Written    int                        `json:"written"`
	Error      string                     `json:"error,omitempty"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	j, err := journal.Open(ctx, a.cfg.JournalConfig())
	if err != nil {
		return err
	}
	defer j.Close()

	p := a.pipeline(ingest.WithKnowledgeBase(client), ingest.WithJournal(j))

	if !ingestFlags.yes && !ingestFlags.json && tui.IsInteractive() {
		confirmed, err := confirmIngest(cmd, p, path, content)
		if err != nil || !confirmed {
			return err
		}
	}

	out, err := p.Ingest(ctx, ingest.Request{
		Content:      content,
		ResourceType: ingestFlags.resourceType,
		Label:        ingestFlags.label,
		Language:     ingestFlags.language,
		Description:  ingestFlags.description,
	})
	if out.Created() && err != nil {
		a.logger.Error("Item %s was created before the failure; see 'wikibase-api journal show %s'", out.ItemID, out.RunID)
	}

	w := cmd.OutOrStdout()
	if ingestFlags.json {
		if jerr := writeJSON(w, newIngestReport(path, out, err)); jerr != nil {
			return jerr
		}
	} else if err == nil || out.Created() {
		tui.NewPrinter(w).Outcome(path, out)
	}
	if err != nil {
		return err
	}
	if !out.Result.Valid() {
		return fmt.Errorf("%w: %s", wbapi.ErrValidationFailed, path)
	}
	return nil
}

// confirmIngest previews the detected fields and asks before writing anything.
// An invalid record is not prompted for; Ingest reports it.
func confirmIngest(cmd *cobra.Command, p *ingest.Pipeline, path string, content []byte) (bool, error) {
	detection, result, err := p.Detect(content, ingestFlags.resourceType)
	if err != nil {
		return false, err
	}
	if !result.Valid() {
		return true, nil
	}
	entry, err := p.Registry().Lookup(ingestFlags.resourceType)
	if err != nil {
		return false, err
	}
	tui.NewPrinter(cmd.ErrOrStderr()).Detection(path, entry.Fields, p.Registry().Properties(), detection)

	ok, err := tui.Confirm(commandContext(cmd), cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Create item %q?", ingestFlags.label))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errors.New("ingest cancelled")
	}
	return true, nil
}

func newIngestReport(path string, out ingest.Outcome, err error) ingestReport {
	resp := out.Result.Response()
	r := ingestReport{
		Path:       path,
		SHA256:     out.Digest.Raw,
		RunID:      out.RunID,
		ItemID:     out.ItemID,
		Valid:      resp.Valid,
		Errors:     resp.Errors,
		Statements: out.Planned,
		Written:    out.Written,
	}
	if r.Statements == nil {
		r.Statements = []ingest.Statement{}
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
