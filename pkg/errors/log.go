package errors

import (
	"log/slog"
)

// LogHandler is an ErrorHandler that logs through slog.
type LogHandler struct {
	// Logger receives the records. Nil uses slog.Default().
	Logger *slog.Logger
	// Verbose adds stack traces to invariant and panic records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a BlueprintError at error level.
func (h *LogHandler) HandleError(err *BlueprintError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Path != "" {
		attrs = append(attrs, "path", err.Path)
	}
	h.logger().Error("blueprint error", attrs...)
}

// HandleInvariant logs an InvariantError at error level.
func (h *LogHandler) HandleInvariant(err *InvariantError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "message", err.Message}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("blueprint invariant violated", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"value", err.Value}
	if err.Op != "" {
		attrs = append(attrs, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("blueprint panic", attrs...)
}
