// Package logging provides concrete implementations of the mqmods.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr, coloring warnings and
//     errors when stderr is a terminal
//   - ZapLogger: Writes structured JSON entries through go.uber.org/zap
//   - MultiLogger: Fans every message out to several loggers
//   - MemoryLogger: Records messages for assertions in tests
//   - NullLogger: Discards all messages
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
