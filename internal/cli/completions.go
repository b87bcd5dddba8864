package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/schema"
	"github.com/ppedin/wikibase-api/internal/wikibase"
)

// datatypes contains the property datatypes offered for shell completion.
var datatypes = []string{
	wikibase.DatatypeString,
	wikibase.DatatypeItem,
	wikibase.DatatypeExternalID,
	wikibase.DatatypeURL,
}

func filterPrefix(candidates []string, prefix string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completeResourceTypes provides shell completion for --type.
func completeResourceTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	catalog := detect.DefaultCatalog()
	registry, err := schema.NewRegistry(catalog, schema.DefaultProperties(), schema.DefaultEntries(catalog))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, e := range registry.List() {
		names = append(names, string(e.Type))
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDatatypes provides shell completion for --datatype.
func completeDatatypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(datatypes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeRecordFile restricts completion of the single record argument to XML files.
func completeRecordFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"xml"}, cobra.ShellCompDirectiveFilterFileExt
}

// addTypeFlag registers --type with its default and completion.
func addTypeFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "type", "t", string(schema.SchedaBibliografica), "Resource type of the records")
	_ = cmd.RegisterFlagCompletionFunc("type", completeResourceTypes)
}
