package patch

import (
	"errors"
	"fmt"
	"strings"
)

// Action selects what a Rule does when its tag is found.
type Action int

const (
	ActionAppend Action = iota
	ActionDelete
	ActionReplace
	ActionSetValue
)

var actionNames = map[Action]string{
	ActionAppend:   "append",
	ActionDelete:   "delete",
	ActionReplace:  "replace",
	ActionSetValue: "set-value",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalText renders the action by name for YAML and JSON output.
func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

// ErrUnknownAction indicates a rule carries an action the engine does not implement.
var ErrUnknownAction = errors.New("unknown update action")

// Rule describes the update applied to one tag.
type Rule struct {
	// TagName is the tag including brackets, e.g. "<intensityThresholdMs1>" or "</diaPeptidePaths>"
	TagName string `yaml:"tag" json:"tag"`

	Action Action `yaml:"action" json:"action"`

	// Lines are written by Append and Replace, trimmed and re-indented
	Lines []string `yaml:"lines,omitempty" json:"lines,omitempty"`

	// AfterClosingTag places appended lines after the tag's closing line.
	// When false they are nested under the still-open tag with three extra spaces.
	AfterClosingTag bool `yaml:"after_closing_tag,omitempty" json:"after_closing_tag,omitempty"`

	// OldValue restricts SetValue to lines containing it; empty means always rewrite
	OldValue string `yaml:"old_value,omitempty" json:"old_value,omitempty"`

	NewValue string `yaml:"new_value,omitempty" json:"new_value,omitempty"`
}

// AppendRule inserts lines after the closing line of tagName.
func AppendRule(tagName string, lines ...string) Rule {
	return Rule{TagName: tagName, Action: ActionAppend, Lines: lines, AfterClosingTag: true}
}

// AppendNestedRule inserts lines right after the opening line of tagName,
// indented one level deeper.
func AppendNestedRule(tagName string, lines ...string) Rule {
	return Rule{TagName: tagName, Action: ActionAppend, Lines: lines}
}

// DeleteRule removes tagName and its value line.
func DeleteRule(tagName string) Rule {
	return Rule{TagName: tagName, Action: ActionDelete}
}

// ReplaceRule swaps tagName and its value line for lines.
func ReplaceRule(tagName string, lines ...string) Rule {
	return Rule{TagName: tagName, Action: ActionReplace, Lines: lines}
}

// SetValueRule rewrites the value of tagName to newValue. When oldValue is
// non-empty, only lines containing oldValue are rewritten.
func SetValueRule(tagName, newValue, oldValue string) Rule {
	return Rule{TagName: tagName, Action: ActionSetValue, NewValue: newValue, OldValue: oldValue}
}

// Name returns the tag name without brackets.
func (r Rule) Name() string {
	return TagName(r.TagName)
}

// ClosingTag returns the closing token the two-line heuristic looks for.
func (r Rule) ClosingTag() string {
	return ClosingTag(r.TagName)
}

func (r Rule) validate() error {
	tag := strings.TrimSpace(r.TagName)
	if len(tag) < 3 || !strings.HasPrefix(tag, "<") || !strings.HasSuffix(tag, ">") {
		return fmt.Errorf("%w: tag %q must look like <name> or </name>", ErrInvalidRule, r.TagName)
	}
	if _, ok := actionNames[r.Action]; !ok {
		return fmt.Errorf("%w: %s has action %d", ErrUnknownAction, r.TagName, int(r.Action))
	}
	if (r.Action == ActionAppend || r.Action == ActionReplace) && len(r.Lines) == 0 {
		return fmt.Errorf("%w: %s rule for %s has no lines", ErrInvalidRule, r.Action, r.TagName)
	}
	return nil
}
