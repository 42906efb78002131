package vecfilter

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/vecfilter/strategy"
)

// Logger wraps slog.Logger with vecfilter-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// LogStrategy logs the resolved execution strategy for a search.
func (l *Logger) LogStrategy(ctx context.Context, s strategy.Strategy, selectivity float64) {
	l.DebugContext(ctx, "strategy resolved",
		"strategy", s.Kind.String(),
		"selectivity", selectivity,
	)
}

// LogSearch logs a filtered search operation. Callers attach the
// neighbor count beforehand via WithK.
func (l *Logger) LogSearch(ctx context.Context, resultsFound, evaluated int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"results", resultsFound,
			"vectors_evaluated", evaluated,
		)
	}
}

// LogShortCircuit logs a search that skipped execution entirely, such
// as a contradiction filter or an empty store.
func (l *Logger) LogShortCircuit(ctx context.Context, reason string) {
	l.DebugContext(ctx, "search short-circuited", "reason", reason)
}
