package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/tui"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the registered resource types",
	Args:  cobra.NoArgs,
	RunE:  runSchemas,
}

var schemasFlags struct {
	json bool
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.Flags().BoolVar(&schemasFlags.json, "json", false, "Print resource type names as JSON")
}

func runSchemas(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	entries := a.registry.List()
	if schemasFlags.json {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, string(e.Type))
		}
		return writeJSON(cmd.OutOrStdout(), names)
	}
	tui.NewPrinter(cmd.OutOrStdout()).Schemas(entries)
	return nil
}
