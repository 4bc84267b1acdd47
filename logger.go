package fastsl

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fastsl-specific context.
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

// WithDepth adds a depth (combination size) field to the logger.
func (l *Logger) WithDepth(depth int) *Logger {
	return &Logger{
		Logger: l.Logger.With("depth", depth),
	}
}

// LogSeed logs the initial frontier population.
func (l *Logger) LogSeed(ctx context.Context, candidates int, cutoff float64) {
	l.InfoContext(ctx, "frontier seeded",
		"candidates", candidates,
		"essential_cutoff", cutoff,
	)
}

// LogPop logs the approximate frontier size when a worker takes a job.
// Purely diagnostic; callers typically rate-limit it.
func (l *Logger) LogPop(ctx context.Context, queueSize int) {
	l.DebugContext(ctx, "combination popped",
		"queue_size", queueSize,
	)
}

// LogLethal logs a certified lethal combination.
func (l *Logger) LogLethal(ctx context.Context, combination string, size int, preChecked bool) {
	l.DebugContext(ctx, "lethal combination recorded",
		"combination", combination,
		"size", size,
		"pre_checked", preChecked,
	)
}

// LogSearch logs the completion of a whole search run.
func (l *Logger) LogSearch(ctx context.Context, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "search completed",
			"results", results,
		)
	}
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
		)
	}
}
