package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikibase-api",
	Short: "Validate TEI bibliographic records and mirror them into Wikibase",
	Long: `wikibase-api checks that bibliographic XML records are well-formed and
carry the mandatory fields of their resource type, then creates one Wikibase
item per record with a statement for every detected field value.

Configuration is read from wikibase-api.yaml in the working directory (or
--config), a .env file next to it, and WIKIBASE_* environment variables.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  4  - At least one record failed validation
  5  - Unknown resource type
  10 - Invalid configuration
  11 - Wikibase instance unreachable
  12 - An item with the same label already exists
  13 - Item or statement creation failed`,
	SilenceUsage: true,
}

// rootFlags holds the persistent flags shared by every command.
var rootFlags struct {
	verbose    bool
	configPath string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configPath, "config", "c", "",
		"Configuration file (default: ./wikibase-api.yaml when present)")
}

// commandContext returns the command's context, or Background when the
// command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
