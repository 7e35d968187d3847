package internal

import (
	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

// CompleteEntityTypes returns completion suggestions for entity type names
func CompleteEntityTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	types := schema.AllEntityTypes()
	names := make([]string, 0, len(types))
	for _, et := range types {
		names = append(names, string(et))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// CompleteOutputFormat returns completion suggestions for output format values
func CompleteOutputFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{
		string(FormatText),
		string(FormatJSON),
		string(FormatYAML),
	}
	return formats, cobra.ShellCompDirectiveNoFileComp
}
