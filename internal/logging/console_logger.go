package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vvka-141/mqmods/internal/tui"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	styles  tui.Styles
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
// Warnings and errors are colored when stderr is a terminal.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose, tui.ColorEnabled(os.Stderr))
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
func NewConsoleLoggerWithWriter(w io.Writer, verbose, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
		styles:  tui.NewStyles(w, color),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.styles.Muted("[VERBOSE] " + format), args)
}

// Info logs status messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(format, args)
}

// Warning logs a non-fatal problem.
func (l *ConsoleLogger) Warning(format string, args ...interface{}) {
	l.write(l.styles.Warning("[WARNING] "+format), args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.styles.Error("[ERROR] "+format), args)
}

func (l *ConsoleLogger) write(format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, format+"\n", args...)
	} else {
		fmt.Fprint(l.out, format+"\n")
	}
}
