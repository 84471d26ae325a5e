package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newArgsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "mqmods [input_path]"}
	cmd.Flags().StringP("input", "i", "", "")
	return cmd
}

func TestValidateInputArgs(t *testing.T) {
	t.Run("accepts no args", func(t *testing.T) {
		if err := validateInputArgs(newArgsCmd(), nil); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("accepts one arg", func(t *testing.T) {
		if err := validateInputArgs(newArgsCmd(), []string{"mqpar.xml"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := validateInputArgs(newArgsCmd(), []string{"a.xml", "b.xml"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts at most 1 arg") {
			t.Errorf("expected error to contain 'accepts at most 1 arg', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), `"MaxQuant*.xml"`) {
			t.Errorf("expected quoting hint, got: %s", err.Error())
		}
	})

	t.Run("returns error when arg and --input are both given", func(t *testing.T) {
		cmd := newArgsCmd()
		if err := cmd.Flags().Set("input", "b.xml"); err != nil {
			t.Fatalf("set flag: %v", err)
		}
		err := validateInputArgs(cmd, []string{"a.xml"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "cannot both be given") {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}
