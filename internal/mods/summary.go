package mods

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/mqmods/pkg/mqmods"
)

// Options tune Summarize.
type Options struct {
	// DedupFirstSearch skips first-search variable mods that were already
	// listed as main-search variable mods in this or an earlier group.
	DedupFirstSearch bool
}

// Group is the modification report for one parameter group.
type Group struct {
	Number   int           `json:"number"`
	Fixed    []string      `json:"fixed,omitempty"`
	Dynamic  []string      `json:"dynamic,omitempty"`
	Isobaric *IsobaricPair `json:"isobaric,omitempty"`
}

// IsobaricPair holds the first internal and first terminal label of a group.
// Either may be nil when no label of that kind exists.
type IsobaricPair struct {
	InternalLabel *string `json:"internal_label,omitempty"`
	TerminalLabel *string `json:"terminal_label,omitempty"`
}

// Summary is the extracted modification report of one file.
type Summary struct {
	Groups     []Group  `json:"groups"`
	Restricted []string `json:"restricted,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Summarize collects the modifications of every parameter group and checks
// the <restrictMods> section against them.
//
// Returns ErrNoParameterGroups when the file has no parameter group. More
// than one group is allowed and only produces a warning.
func Summarize(pf *ParamFile, opts Options) (*Summary, error) {
	groups := pf.groups()
	if len(groups) == 0 {
		return nil, ErrNoParameterGroups
	}

	summary := &Summary{
		Groups:     make([]Group, 0, len(groups)),
		Restricted: append([]string(nil), pf.restricted()...),
	}

	if len(groups) > 1 {
		summary.warn("MaxQuant parameter file has more than one <parameterGroup> element; this is allowed, but not usually used")
	}

	mainSearch := make(map[string]bool)
	dynamic := make(map[string]bool)

	for i, pg := range groups {
		group := Group{
			Number: i + 1,
			Fixed:  append([]string(nil), pg.FixedModifications...),
		}

		for _, name := range pg.VariableModifications {
			group.Dynamic = append(group.Dynamic, name)
			mainSearch[name] = true
		}
		for _, name := range pg.VariableModificationsFirstSearch {
			if opts.DedupFirstSearch && mainSearch[name] {
				continue
			}
			group.Dynamic = append(group.Dynamic, name)
		}
		for _, name := range group.Dynamic {
			dynamic[name] = true
		}

		group.Isobaric = firstIsobaricPair(pg.IsobaricLabels)
		summary.Groups = append(summary.Groups, group)
	}

	for _, name := range summary.Restricted {
		if mqmods.IsDefaultRestrictedMod(name) {
			continue
		}
		summary.warn("Dynamic mod %s is defined in the <restrictMods> section, which means it will be considered during protein quantification;\n"+
			"  typically, only oxidized methionine and N-terminal acetylation should be defined here", name)
	}

	for _, name := range summary.Restricted {
		if dynamic[name] {
			continue
		}
		summary.warn("Dynamic mod %s is defined in the <restrictMods> section, but is not defined in the <variableModifications> section;\n"+
			"  this is likely an error", name)
	}

	return summary, nil
}

// firstIsobaricPair finds the first internal label and the first terminal
// label independently. Returns nil when the group has neither.
func firstIsobaricPair(labels []IsobaricLabelInfo) *IsobaricPair {
	var pair IsobaricPair
	for _, label := range labels {
		if pair.InternalLabel == nil && label.InternalLabel != nil {
			v := *label.InternalLabel
			pair.InternalLabel = &v
		}
		if pair.TerminalLabel == nil && label.TerminalLabel != nil {
			v := *label.TerminalLabel
			pair.TerminalLabel = &v
		}
	}
	if pair.InternalLabel == nil && pair.TerminalLabel == nil {
		return nil
	}
	return &pair
}

func (s *Summary) warn(format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Write renders the report in parameter file syntax, framed by blank lines.
// Groups are labeled only when there is more than one.
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder

	b.WriteString("\n")
	for _, group := range s.Groups {
		if len(s.Groups) > 1 {
			fmt.Fprintf(&b, "Parameter group %d\n", group.Number)
		}

		writeList(&b, "fixedModifications", group.Fixed)
		writeList(&b, "variableModifications", group.Dynamic)

		if group.Isobaric != nil {
			b.WriteString("    <isobaricLabels>\n")
			b.WriteString("       <IsobaricLabelInfo>\n")
			if group.Isobaric.InternalLabel != nil {
				fmt.Fprintf(&b, "          <internalLabel>%s</internalLabel>\n", *group.Isobaric.InternalLabel)
			}
			if group.Isobaric.TerminalLabel != nil {
				fmt.Fprintf(&b, "          <terminalLabel>%s</terminalLabel>\n", *group.Isobaric.TerminalLabel)
			}
			b.WriteString("       </IsobaricLabelInfo>\n")
			b.WriteString("    </isobaricLabels>\n")
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, element string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "    <%s>\n", element)
	for _, name := range names {
		fmt.Fprintf(b, "        <string>%s</string>\n", name)
	}
	fmt.Fprintf(b, "    </%s>\n", element)
}
