package logging

import "github.com/vvka-141/mqmods/pkg/mqmods"

// MultiLogger sends every message to each of its loggers in order.
type MultiLogger struct {
	loggers []mqmods.Logger
}

// NewMultiLogger creates a fan-out logger. Nil loggers are skipped.
func NewMultiLogger(loggers ...mqmods.Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) Verbose(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Verbose(format, args...)
	}
}

func (m *MultiLogger) Info(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, args...)
	}
}

func (m *MultiLogger) Warning(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Warning(format, args...)
	}
}

func (m *MultiLogger) Error(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, args...)
	}
}

var (
	_ mqmods.Logger = (*ConsoleLogger)(nil)
	_ mqmods.Logger = (*NullLogger)(nil)
	_ mqmods.Logger = (*MemoryLogger)(nil)
	_ mqmods.Logger = (*ZapLogger)(nil)
	_ mqmods.Logger = (*MultiLogger)(nil)
)
