package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mqmods/internal/patch"
)

type renderedRule struct {
	Tag      string   `yaml:"tag" json:"tag"`
	Action   string   `yaml:"action" json:"action"`
	Lines    []string `yaml:"lines" json:"lines"`
	OldValue string   `yaml:"old_value" json:"old_value"`
	NewValue string   `yaml:"new_value" json:"new_value"`
}

func TestRecipeCommand_YAML(t *testing.T) {
	stdout, _, err := executeCommand(t, "recipe")
	require.NoError(t, err)

	var rules []renderedRule
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &rules))

	recipe, err := patch.DefaultRecipe()
	require.NoError(t, err)
	require.Len(t, rules, recipe.Len())

	assert.Equal(t, "<deNovoUseA2Score>", rules[0].Tag)
	assert.Equal(t, "append", rules[0].Action)

	last := rules[len(rules)-1]
	assert.Equal(t, "<lcmsRunType>", last.Tag)
	assert.Equal(t, "set-value", last.Action)
	assert.Equal(t, "Reporter MS2", last.NewValue)
	assert.Equal(t, "Reporter ion MS2", last.OldValue)
}

func TestRecipeCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "recipe", "--json")
	require.NoError(t, err)

	var rules []renderedRule
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))

	actions := map[string]int{}
	for _, r := range rules {
		actions[r.Action]++
	}
	assert.Equal(t, map[string]int{"append": 12, "delete": 15, "replace": 8, "set-value": 4}, actions)
}

func TestRecipeCommand_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "recipe", "extra")
	require.Error(t, err)
}
