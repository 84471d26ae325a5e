package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.Logger to the mqmods.Logger interface.
// Messages are formatted before logging; warnings and errors keep their level.
type ZapLogger struct {
	logger  *zap.Logger
	verbose bool
}

// NewZapLogger wraps an existing zap logger.
// Verbose messages are logged at debug level and only when verbose is true.
func NewZapLogger(logger *zap.Logger, verbose bool) *ZapLogger {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ZapLogger{logger: logger, verbose: verbose}
}

// NewFileLogger creates a ZapLogger that appends JSON entries to path.
func NewFileLogger(path string, verbose bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return NewZapLogger(logger.Named("mqmods"), verbose), nil
}

func (l *ZapLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.logger.Debug(sprintf(format, args))
}

func (l *ZapLogger) Info(format string, args ...interface{}) {
	l.logger.Info(sprintf(format, args))
}

func (l *ZapLogger) Warning(format string, args ...interface{}) {
	l.logger.Warn(sprintf(format, args))
}

func (l *ZapLogger) Error(format string, args ...interface{}) {
	l.logger.Error(sprintf(format, args))
}

// Close flushes buffered entries.
func (l *ZapLogger) Close() error {
	return l.logger.Sync()
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
