package mods

import "encoding/xml"

// RootElement is the document element of a MaxQuant parameter file.
const RootElement = "MaxQuantParams"

// ParamFile is the decoded subset of a MaxQuant parameter file.
//
// XMLName is left untagged so documents with another root still decode; such
// files are treated as having no parameter groups.
type ParamFile struct {
	XMLName         xml.Name
	RestrictMods    []string         `xml:"restrictMods>string"`
	ParameterGroups []ParameterGroup `xml:"parameterGroups>parameterGroup"`
}

// ParameterGroup holds the modification lists of one <parameterGroup>.
type ParameterGroup struct {
	FixedModifications               []string            `xml:"fixedModifications>string"`
	VariableModifications            []string            `xml:"variableModifications>string"`
	VariableModificationsFirstSearch []string            `xml:"variableModificationsFirstSearch>string"`
	IsobaricLabels                   []IsobaricLabelInfo `xml:"isobaricLabels>IsobaricLabelInfo"`
}

// IsobaricLabelInfo is one label of an isobaric reagent (TMT, iTRAQ).
// Nil fields mean the element was absent.
type IsobaricLabelInfo struct {
	InternalLabel *string `xml:"internalLabel"`
	TerminalLabel *string `xml:"terminalLabel"`
}

// groups returns the parameter groups, or nil when the root element is not
// RootElement.
func (pf *ParamFile) groups() []ParameterGroup {
	if pf == nil || pf.XMLName.Local != RootElement {
		return nil
	}
	return pf.ParameterGroups
}

// restricted returns the <restrictMods> names, or nil when the root element
// is not RootElement.
func (pf *ParamFile) restricted() []string {
	if pf == nil || pf.XMLName.Local != RootElement {
		return nil
	}
	return pf.RestrictMods
}
