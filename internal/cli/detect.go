package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/tui"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var detectCmd = &cobra.Command{
	Use:   "detect <record.xml>",
	Short: "Show the field values found in a record",
	Long: `Detect validates a record and lists the value found for every field of
its resource type, with the Wikibase property each field is written to.
Nothing is sent to Wikibase.

Examples:
  wikibase-api detect scheda.xml
  wikibase-api detect scheda.xml --json`,
	Args:              RequireRecordFile,
	ValidArgsFunction: completeRecordFile,
	RunE:              runDetect,
}

var detectFlags struct {
	resourceType string
	json         bool
}

func init() {
	rootCmd.AddCommand(detectCmd)
	addTypeFlag(detectCmd, &detectFlags.resourceType)
	detectCmd.Flags().BoolVar(&detectFlags.json, "json", false, "Print detected fields as JSON")
}

// detectionReport is the JSON form of a detection. Only fields with values are listed.
type detectionReport struct {
	Path   string              `json:"path"`
	Fields map[string][]string `json:"fields"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := a.pipeline()
	detection, result, err := p.Detect(content, detectFlags.resourceType)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !result.Valid() {
		if detectFlags.json {
			if err := writeJSON(out, recordReport{Path: path, Errors: result.Response().Errors}); err != nil {
				return err
			}
		} else {
			tui.NewPrinter(out).Validation(path, result)
		}
		return fmt.Errorf("%w: %s", wbapi.ErrValidationFailed, path)
	}

	entry, err := p.Registry().Lookup(detectFlags.resourceType)
	if err != nil {
		return err
	}
	if detectFlags.json {
		return writeJSON(out, newDetectionReport(path, entry.Fields, detection))
	}
	tui.NewPrinter(out).Detection(path, entry.Fields, p.Registry().Properties(), detection)
	return nil
}

func newDetectionReport(path string, fields []detect.Field, d detect.Detection) detectionReport {
	r := detectionReport{Path: path, Fields: map[string][]string{}}
	for _, f := range fields {
		if v := d[f]; !v.Empty() {
			r.Fields[f.String()] = v
		}
	}
	return r
}
