package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/scaffold"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Generate a skeleton record that passes validation",
	Long: `Scaffold prints a TEI skeleton for a resource type with bracketed
placeholders where field values go. By default only the mandatory fields are
included; --full adds every field the resource type extracts.

Examples:
  wikibase-api scaffold > scheda.xml
  wikibase-api scaffold --full -o scheda.xml
  wikibase-api scaffold --no-namespace`,
	Args: cobra.NoArgs,
	RunE: runScaffold,
}

var scaffoldFlags struct {
	resourceType string
	namespace    string
	noNamespace  bool
	full         bool
	output       string
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
	addTypeFlag(scaffoldCmd, &scaffoldFlags.resourceType)
	scaffoldCmd.Flags().StringVar(&scaffoldFlags.namespace, "namespace", scaffold.TEINamespace, "Namespace declared on the root element")
	scaffoldCmd.Flags().BoolVar(&scaffoldFlags.noNamespace, "no-namespace", false, "Generate an un-namespaced record")
	scaffoldCmd.Flags().BoolVar(&scaffoldFlags.full, "full", false, "Include every field of the resource type")
	scaffoldCmd.Flags().StringVarP(&scaffoldFlags.output, "output", "o", "", "Write to a new file instead of stdout")
	scaffoldCmd.MarkFlagsMutuallyExclusive("namespace", "no-namespace")
}

func runScaffold(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	opts := scaffold.Options{Namespace: scaffoldFlags.namespace, Full: scaffoldFlags.full}
	if scaffoldFlags.noNamespace {
		opts.Namespace = ""
	}

	s := scaffold.NewScaffolder(a.registry, a.logger)
	if scaffoldFlags.output == "" {
		return s.Write(cmd.OutOrStdout(), scaffoldFlags.resourceType, opts)
	}
	if err := s.WriteFile(scaffoldFlags.output, scaffoldFlags.resourceType, opts); err != nil {
		return err
	}
	a.logger.Info("Created %s", scaffoldFlags.output)
	return nil
}
