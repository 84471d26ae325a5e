package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Level identifies the method an entry was logged with.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Entry is one recorded message with its arguments already applied.
type Entry struct {
	Level   Level
	Message string
}

// MemoryLogger records every message, including verbose ones.
// Safe for concurrent use by multiple goroutines.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates an empty MemoryLogger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Verbose(format string, args ...interface{}) {
	l.record(LevelVerbose, format, args)
}

func (l *MemoryLogger) Info(format string, args ...interface{}) {
	l.record(LevelInfo, format, args)
}

func (l *MemoryLogger) Warning(format string, args ...interface{}) {
	l.record(LevelWarning, format, args)
}

func (l *MemoryLogger) Error(format string, args ...interface{}) {
	l.record(LevelError, format, args)
}

func (l *MemoryLogger) record(level Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of everything logged so far.
func (l *MemoryLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Messages returns the messages logged at level, in order.
func (l *MemoryLogger) Messages(level Level) []string {
	var msgs []string
	for _, e := range l.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Contains reports whether any message at level contains substr.
func (l *MemoryLogger) Contains(level Level, substr string) bool {
	for _, msg := range l.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
