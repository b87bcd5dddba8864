package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/tui"
	"github.com/ppedin/wikibase-api/internal/wikibase"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Show which Wikibase property each field is written to",
	Long: `Properties lists the field to property mapping, including overrides from
the properties section of wikibase-api.yaml. With --remote the datatype of
each property is fetched from Wikibase, which confirms the mapping points at
existing properties.`,
	Args: cobra.NoArgs,
	RunE: runProperties,
}

var propertiesFlags struct {
	remote bool
	json   bool
}

var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Manage Wikibase properties",
}

var propertyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a property in Wikibase",
	Long: `Create adds a property to the configured Wikibase instance and prints its
id. Map a field to it with the properties section of wikibase-api.yaml.

Example:
  wikibase-api property create --label "DOI" --datatype external-id`,
	Args: cobra.NoArgs,
	RunE: runPropertyCreate,
}

var propertyCreateFlags struct {
	label       string
	datatype    string
	description string
	language    string
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
	propertiesCmd.Flags().BoolVar(&propertiesFlags.remote, "remote", false, "Fetch each property's datatype from Wikibase")
	propertiesCmd.Flags().BoolVar(&propertiesFlags.json, "json", false, "Print the mapping as JSON")

	rootCmd.AddCommand(propertyCmd)
	propertyCmd.AddCommand(propertyCreateCmd)
	propertyCreateCmd.Flags().StringVar(&propertyCreateFlags.label, "label", "", "Property label (required)")
	propertyCreateCmd.Flags().StringVar(&propertyCreateFlags.datatype, "datatype", wikibase.DatatypeString, "Property datatype")
	propertyCreateCmd.Flags().StringVar(&propertyCreateFlags.description, "description", "", "Property description")
	propertyCreateCmd.Flags().StringVar(&propertyCreateFlags.language, "language", "", "Label language (default: wikibase.language)")
	_ = propertyCreateCmd.MarkFlagRequired("label")
	_ = propertyCreateCmd.RegisterFlagCompletionFunc("datatype", completeDatatypes)
}

// propertyReport is the JSON form of one mapping row.
type propertyReport struct {
	Field    string `json:"field"`
	Property string `json:"property"`
	Datatype string `json:"datatype,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runProperties(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	props := a.registry.Properties()
	rows := make([]tui.PropertyRow, 0, len(props))
	for _, f := range props.Fields() {
		id, _ := props.Property(f)
		rows = append(rows, tui.PropertyRow{Field: f, Property: id})
	}

	failed := 0
	if propertiesFlags.remote {
		client, err := a.client()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		if err := client.CheckConnection(ctx); err != nil {
			return err
		}
		for i := range rows {
			dt, err := client.PropertyDatatype(ctx, rows[i].Property)
			if err != nil {
				rows[i].Err = err
				failed++
				continue
			}
			rows[i].Datatype = dt
		}
	}

	out := cmd.OutOrStdout()
	if propertiesFlags.json {
		reports := make([]propertyReport, 0, len(rows))
		for _, r := range rows {
			pr := propertyReport{Field: r.Field.String(), Property: r.Property, Datatype: r.Datatype}
			if r.Err != nil {
				pr.Error = r.Err.Error()
			}
			reports = append(reports, pr)
		}
		if err := writeJSON(out, reports); err != nil {
			return err
		}
	} else {
		tui.NewPrinter(out).Properties(rows)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d properties", wbapi.ErrPropertyInfoUnavailable, failed, len(rows))
	}
	return nil
}

func runPropertyCreate(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}

	lang := propertyCreateFlags.language
	if lang == "" {
		lang = a.cfg.Language()
	}
	id, err := client.CreateProperty(commandContext(cmd), wikibase.PropertySpec{
		Label:       propertyCreateFlags.label,
		Language:    lang,
		Description: propertyCreateFlags.description,
		Datatype:    propertyCreateFlags.datatype,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", wbapi.ErrItemCreationFailed, err)
	}
	a.logger.Verbose("Created property %s (%s)", id, propertyCreateFlags.datatype)
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
