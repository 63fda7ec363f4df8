package parallel

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger. Operation failures are reported through it at
// the boundary of the operation that failed.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at warn level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// opFailed logs an operation that returned the zero value because of err.
func (l *Logger) opFailed(op string, n int, err error) {
	l.Warn("parallel: operation failed", "op", op, "n", n, "error", err)
}
