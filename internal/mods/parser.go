package mods

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes the modification settings from parameter file content.
// filePath is only used for error messages.
//
// Returns *ParamFileError for empty or malformed XML.
func Parse(content []byte, filePath string) (*ParamFile, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &ParamFileError{
			FilePath: filePath,
			Message:  "file is empty",
			Hint:     "Expected a MaxQuant parameter file with a <" + RootElement + "> root element.",
		}
	}

	var pf ParamFile
	decoder := xml.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParamFileError{
				FilePath: filePath,
				Message:  "no XML element found",
				Hint:     "Expected a MaxQuant parameter file with a <" + RootElement + "> root element.",
			}
		}
		return nil, wrapXMLError(err, filePath)
	}

	if err := checkTrailing(decoder, filePath); err != nil {
		return nil, err
	}

	return &pf, nil
}

// checkTrailing rejects anything after the root element other than
// whitespace, comments and processing instructions.
func checkTrailing(decoder *xml.Decoder, filePath string) error {
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return wrapXMLError(err, filePath)
		}

		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		}

		line, _ := decoder.InputPos()
		return &ParamFileError{
			FilePath: filePath,
			Line:     line,
			Message:  "unexpected content after the <" + RootElement + "> root element",
			Hint:     "A parameter file has exactly one root element; remove anything after its closing tag.",
		}
	}
}
