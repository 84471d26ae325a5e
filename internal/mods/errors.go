package mods

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrNoParameterGroups indicates the file has no <parameterGroup> element under
// <MaxQuantParams><parameterGroups>.
var ErrNoParameterGroups = errors.New("MaxQuant parameter file is missing the <parameterGroup> element; cannot extract modification info")

// ParamFileError describes a parameter file that could not be decoded.
type ParamFileError struct {
	FilePath string // Path to the file with the error
	Line     int    // Line number (0 if unknown)
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

func (e *ParamFileError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}

	msg := fmt.Sprintf("invalid parameter file %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// wrapXMLError converts xml package errors to ParamFileError with line numbers.
func wrapXMLError(err error, filePath string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParamFileError{
			FilePath: filePath,
			Line:     syntaxErr.Line,
			Message:  syntaxErr.Msg,
			Hint: "Check that all XML tags are properly closed.\n" +
				"MaxQuant writes this file itself; re-save it from the MaxQuant GUI if it was edited by hand.",
		}
	}

	return &ParamFileError{
		FilePath: filePath,
		Message:  err.Error(),
		Hint:     "Expected a MaxQuant parameter file with a <" + RootElement + "> root element.",
	}
}
