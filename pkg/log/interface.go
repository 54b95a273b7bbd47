// Package log provides the structured logging interface used by onlinelearn.
//
// The Logger interface mirrors log/slog's method set so call sites stay
// backend agnostic; the default backend is zerolog (see zerolog.go). Field
// keys for training runs are defined in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("train").With(
//	    log.ModelNameKey, "OneVsRest",
//	)
//	logger.Info("epoch finished",
//	    log.EpochKey, 3,
//	    log.AccuracyKey, 0.96,
//	)
package log

import (
	"context"
)

// Logger is a structured, leveled logger. Fields are alternating key/value
// pairs.
type Logger interface {
	// Debug logs detailed diagnostic information, e.g. per-event updates.
	Debug(msg string, fields ...any)

	// Info logs operational information such as per-epoch accuracy.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop a run, such as detected drift.
	Warn(msg string, fields ...any)

	// Error logs a failure. If the first field is an error it is attached as
	// the error of the record, including its stack trace when available:
	//
	//	logger.Error("training aborted", err, log.EpochKey, 12)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. It lets tests inject a TestLoggerProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by the provider.
	SetLevel(level Level)
}
