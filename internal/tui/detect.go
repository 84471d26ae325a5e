package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents whether output is decorated for a human at a terminal.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, redirected output and NO_COLOR.
	ModePlain Mode = iota
	// ModeColor is used when the stream is a terminal.
	ModeColor
)

// DetectMode determines whether output written to f should be colored.
//
// Returns ModePlain if:
//   - MQMODS_NO_COLOR=1 is set
//   - NO_COLOR is set (accessibility/automation indicator)
//   - CI is set (common CI/CD convention)
//   - f is nil or not a terminal (redirected to a file or pipe)
//
// Returns ModeColor otherwise.
func DetectMode(f *os.File) Mode {
	if os.Getenv("MQMODS_NO_COLOR") == "1" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}

	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}

	return ModeColor
}

// ColorEnabled is a convenience function that returns true if output to f
// should be colored.
func ColorEnabled(f *os.File) bool {
	return DetectMode(f) == ModeColor
}
