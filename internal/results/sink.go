// Package results defines the sink through which run outcomes and faults are
// reported to the user.
package results

import "log/slog"

// Sink receives human-readable messages about a run. The local setup path
// only consumes it from the brokerage fault hook; networked deployments
// stream richer payloads through it.
type Sink interface {
	// RuntimeError reports a fault with an optional stack trace or detail.
	RuntimeError(message, detail string)

	// Message reports an informational message.
	Message(text string)
}

// Compile-time interface check.
var _ Sink = (*LogSink)(nil)

// LogSink writes messages through a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// RuntimeError logs the fault at error level.
func (s *LogSink) RuntimeError(message, detail string) {
	s.logger.Error("runtime error", "message", message, "detail", detail)
}

// Message logs the text at info level.
func (s *LogSink) Message(text string) {
	s.logger.Info(text)
}
