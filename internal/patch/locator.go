package patch

import (
	"regexp"
	"strings"
)

// tagPattern finds a tag token after leading spaces. Tabs are not treated as
// indentation, so tab-indented lines never match.
var tagPattern = regexp.MustCompile(`(?i)^(?P<indent> *)(?P<token><[a-z/][^> ]+)`)

// tagNamePattern extracts the text between the first < and >.
var tagNamePattern = regexp.MustCompile(`<(?P<name>[^>]+)>`)

// Tag is a tag token found at the start of a line.
type Tag struct {
	// Indent is the run of spaces before the token
	Indent string

	// Token is the tag without its closing bracket, e.g. "<boxCarMode" or "</diaMsmsPaths"
	Token string
}

// Key returns the recipe lookup key, e.g. "<boxCarMode>".
func (t Tag) Key() string {
	return t.Token + ">"
}

// LocateTag reports the tag token that opens line, if any.
// Blank lines and lines starting with text or a tab do not match.
func LocateTag(line string) (Tag, bool) {
	m := tagPattern.FindStringSubmatch(line)
	if m == nil {
		return Tag{}, false
	}
	return Tag{Indent: m[1], Token: m[2]}, true
}

// ClosingTag returns the closing token for tagName.
// A tag that is already a closing tag is returned unchanged; "<x>" becomes "</x>".
// Returns an empty string when tagName is not a tag.
func ClosingTag(tagName string) string {
	trimmed := strings.TrimSpace(tagName)

	if strings.HasPrefix(trimmed, "</") {
		return tagName
	}

	if strings.HasPrefix(trimmed, "<") {
		return "</" + trimmed[1:]
	}

	return ""
}

// TagName returns the text inside the first <...> of s, or s itself when it
// contains no tag. "<writeSdrf>False</writeSdrf>" yields "writeSdrf".
func TagName(s string) string {
	m := tagNamePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[1]
}
