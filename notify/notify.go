// Package notify defines the error/notification sink consumed by the layer
// engine. The engine reports structured failures and a dedicated low-memory
// signal through a Sink; how they are presented to the user is out of scope.
package notify

import "log/slog"

// Sink accepts failure reports from the editing core.
type Sink interface {
	// Error reports a failure with its full cause chain.
	Error(err error)
	// LowMemory signals resource exhaustion during the named operation.
	// The operation was abandoned with prior state untouched.
	LowMemory(op string)
}

// LogSink reports through a slog logger.
type LogSink struct {
	Logger *slog.Logger
}

// Error implements Sink.
func (s *LogSink) Error(err error) {
	s.Logger.Error("operation failed", "err", err)
}

// LowMemory implements Sink.
func (s *LogSink) LowMemory(op string) {
	s.Logger.Warn("low memory, operation abandoned", "op", op)
}

// CollectSink records notifications for inspection in tests.
type CollectSink struct {
	Errors    []error
	LowMemOps []string
}

// Error implements Sink.
func (s *CollectSink) Error(err error) {
	s.Errors = append(s.Errors, err)
}

// LowMemory implements Sink.
func (s *CollectSink) LowMemory(op string) {
	s.LowMemOps = append(s.LowMemOps, op)
}
