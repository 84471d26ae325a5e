package cli

import (
	"github.com/spf13/cobra"
)

// parameterFileExtensions are offered when completing MaxQuant parameter files.
var parameterFileExtensions = []string{"xml"}

// paramFileExtensions are offered when completing mqmods parameter files.
var paramFileExtensions = []string{"yaml", "yml"}

// completeParameterFiles provides shell completion for MaxQuant parameter files.
func completeParameterFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell list files with the extension
	return parameterFileExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeYAMLFiles provides shell completion for --param-file.
func completeYAMLFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return paramFileExtensions, cobra.ShellCompDirectiveFilterFileExt
}
