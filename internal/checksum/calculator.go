package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator is an interface for computing parameter file checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Remove XML comments (<!-- -->) outside CDATA sections
//  2. Collapse whitespace to single spaces
//  3. Drop whitespace between elements
//
// Element and value case is kept; XML is case-sensitive.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

func (c SHA256) normalize(content string) string {
	cleaned := c.removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	lastWasSpace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.ReplaceAll(strings.TrimSpace(b.String()), "> <", "><")
}

type commentState int

const (
	csNormal commentState = iota
	csComment
	csCData
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// removeComments removes XML comments while preserving CDATA sections.
func (c SHA256) removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := csNormal
	i := 0

	for i < len(content) {
		switch state {
		case csNormal:
			if strings.HasPrefix(content[i:], commentOpen) {
				state = csComment
				b.WriteByte(' ')
				i += len(commentOpen)
			} else if strings.HasPrefix(content[i:], cdataOpen) {
				state = csCData
				b.WriteString(cdataOpen)
				i += len(cdataOpen)
			} else {
				b.WriteByte(content[i])
				i++
			}

		case csComment:
			if strings.HasPrefix(content[i:], commentClose) {
				state = csNormal
				i += len(commentClose)
			} else {
				i++
			}

		case csCData:
			if strings.HasPrefix(content[i:], cdataClose) {
				state = csNormal
				b.WriteString(cdataClose)
				i += len(cdataClose)
			} else {
				b.WriteByte(content[i])
				i++
			}
		}
	}

	return b.String()
}
