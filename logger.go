package bamsift

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace is one step more verbose than slog.LevelDebug. slog has no
// trace level of its own; the CLI maps -vvv here.
const LevelTrace = slog.LevelDebug - 4

// Logger wraps slog.Logger with bamsift-specific helpers.
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

// LogSetLoad logs the result of loading one read list.
func (l *Logger) LogSetLoad(ctx context.Context, name string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read list load failed",
			"source", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "read list loaded",
			"source", name,
			"reads", count,
		)
	}
}

// LogRoute logs a single routed record. Emitted at trace level; this fires
// once per matched record.
func (l *Logger) LogRoute(ctx context.Context, qname string, bucket int) {
	l.Log(ctx, LevelTrace, "record routed",
		"qname", qname,
		"bucket", bucket,
	)
}

// LogLeftover logs the post-run leftover report for one bucket. The count
// is always reported; the names themselves only at debug level.
func (l *Logger) LogLeftover(ctx context.Context, name string, leftover []string) {
	l.InfoContext(ctx, "unplaced reads",
		"source", name,
		"count", len(leftover),
	)
	if len(leftover) > 0 {
		l.DebugContext(ctx, "unplaced read names",
			"source", name,
			"reads", leftover,
		)
	}
}

// LogSummary logs the final run summary.
func (l *Logger) LogSummary(ctx context.Context, s *Summary) {
	l.InfoContext(ctx, "split completed",
		"records", s.Records,
		"matched", s.Matched,
		"unmatched", s.Unmatched,
		"buckets", len(s.Buckets),
	)
}
