package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mqmods/internal/patch"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Print the MaxQuant 2.4.13 migration recipe",
	Long: `Recipe prints every rule --update applies, in the order they are registered.

Each rule names the tag it matches and one of four actions:
  append     write new lines after the tag (or nested inside it)
  delete     remove the tag and its value line
  replace    swap the tag for new lines
  set-value  rewrite the tag's value, optionally only when it holds old_value`,
	Args: cobra.NoArgs,
	RunE: runRecipe,
}

var recipeFlags struct {
	json bool
}

func init() {
	recipeCmd.Flags().BoolVar(&recipeFlags.json, "json", false, "Print the recipe as JSON instead of YAML")
	rootCmd.AddCommand(recipeCmd)
}

func runRecipe(cmd *cobra.Command, args []string) error {
	recipe, err := patch.DefaultRecipe()
	if err != nil {
		return fmt.Errorf("failed to build migration recipe: %w", err)
	}

	out := cmd.OutOrStdout()
	rules := recipe.Rules()

	if recipeFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	return enc.Close()
}
