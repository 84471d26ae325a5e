package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles renders console messages for one output stream.
// The zero value renders plain text.
type Styles struct {
	enabled bool
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// NewStyles creates styles bound to w. When color is false every method
// returns its input unchanged.
func NewStyles(w io.Writer, color bool) Styles {
	if !color {
		return Styles{}
	}

	r := lipgloss.NewRenderer(w)
	return Styles{
		enabled: true,
		warning: r.NewStyle().Foreground(ColorWarning),
		err:     r.NewStyle().Foreground(ColorError).Bold(true),
		muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// Warning renders a warning message.
func (s Styles) Warning(text string) string { return s.render(s.warning, text) }

// Error renders an error message.
func (s Styles) Error(text string) string { return s.render(s.err, text) }

// Muted renders secondary text such as verbose diagnostics.
func (s Styles) Muted(text string) string { return s.render(s.muted, text) }
