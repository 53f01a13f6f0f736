package prime

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with engine-specific helpers so that chunk and
// batch log lines use consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a default text handler to stderr is used.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogChunk logs a completed chunk.
func (l *Logger) LogChunk(ctx context.Context, start, end uint64, found int) {
	l.DebugContext(ctx, "chunk completed",
		"start", start,
		"end", end,
		"found", found,
	)
}

// LogCanceled logs a run stopped by its pre-cycle hook.
func (l *Logger) LogCanceled(ctx context.Context, start, end uint64) {
	l.DebugContext(ctx, "run canceled before chunk",
		"start", start,
		"end", end,
	)
}

// LogRun logs a finished generation run.
func (l *Logger) LogRun(ctx context.Context, until uint64, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generation stopped",
			"until", until,
			"known", total,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "generation completed",
			"until", until,
			"known", total,
		)
	}
}
