package log

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/rs/zerolog"
)

// zerologLogger adapts a zerolog.Logger to Logger.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) Logger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Stack().Err(err)
			var m zerolog.LogObjectMarshaler
			if errors.As(err, &m) {
				e = e.EmbedObject(m)
			}
			fields = fields[1:]
		}
	}
	emit(e, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

// emit writes the record; zerolog hands out a nil event for disabled levels.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", s)
	}
}

// zerologProvider is the default LoggerProvider.
type zerologProvider struct {
	mu     sync.RWMutex
	w      io.Writer
	level  Level
	logger Logger
}

func newZerologProvider(w io.Writer, level Level) *zerologProvider {
	return &zerologProvider{w: w, level: level, logger: NewZerologLogger(w, level)}
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.logger = NewZerologLogger(p.w, level)
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = newZerologProvider(os.Stderr, LevelInfo)
)

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

func currentProvider() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}

// GetLogger returns the global default logger.
func GetLogger() Logger {
	return currentProvider().GetLogger()
}

// GetLoggerWithName returns the global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return currentProvider().GetLoggerWithName(name)
}

// SetLevel sets the level of the global provider.
func SetLevel(level Level) {
	currentProvider().SetLevel(level)
}

// SetupLogger installs a zerolog provider writing to w at the given level,
// renders cockroachdb/errors stacks on error records and routes
// errors.Warn through the new logger.
func SetupLogger(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.ErrorStackMarshaler = marshalStack
	p := newZerologProvider(w, lvl)
	SetProvider(p)

	warnLogger := p.GetLoggerWithName("warnings").(*zerologLogger)
	errors.SetZerologWarnFunc(func(warning error) {
		e := warnLogger.zl.Warn()
		if e == nil {
			return
		}
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			e = e.EmbedObject(m)
		}
		e.Msg(warning.Error())
	})
	return nil
}
