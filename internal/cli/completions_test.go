package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteParameterFiles(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("filters xml files for first arg", func(t *testing.T) {
		exts, directive := completeParameterFiles(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterFileExt {
			t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
		}
		if len(exts) != 1 || exts[0] != "xml" {
			t.Errorf("expected [xml], got %v", exts)
		}
	})

	t.Run("no completion after first arg", func(t *testing.T) {
		exts, directive := completeParameterFiles(cmd, []string{"mqpar.xml"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
		if len(exts) != 0 {
			t.Errorf("expected no completions, got %v", exts)
		}
	})
}

func TestCompleteYAMLFiles(t *testing.T) {
	exts, directive := completeYAMLFiles(&cobra.Command{}, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
	}
	if len(exts) != 2 {
		t.Errorf("expected yaml and yml, got %v", exts)
	}
}
