package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateInputArgs accepts at most one input_path and rejects combining it
// with --input. A missing path is reported after the parameter file and
// environment have been consulted.
func validateInputArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Quote wildcard masks so the shell does not expand them:
  %s "MaxQuant*.xml"`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) == 1 && cmd.Flags().Changed("input") {
		return fmt.Errorf("input_path %q and --input cannot both be given", args[0])
	}
	return nil
}
