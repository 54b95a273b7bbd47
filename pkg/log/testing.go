package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
)

// TestLogger captures records in memory for assertions. It uses the zerolog
// backend, so the captured JSON is exactly what production emits.
type TestLogger struct {
	Logger
	buffer *syncBuffer
}

// syncBuffer serialises writes from concurrent loggers sharing one buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// NewTestLogger creates a TestLogger that records messages at level and above.
//
//	logger := log.NewTestLogger(log.LevelDebug)
//	logger.Info("epoch finished", log.EpochKey, 1)
//	if !logger.ContainsField(log.EpochKey, 1.0) { ... }
func NewTestLogger(level Level) *TestLogger {
	buf := &syncBuffer{}
	return &TestLogger{
		Logger: NewZerologLogger(buf, level),
		buffer: buf,
	}
}

// String returns the raw captured output.
func (t *TestLogger) String() string {
	return t.buffer.String()
}

// GetLogEntries parses the captured JSON lines.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any record's message contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if msg, ok := entry["message"].(string); ok && strings.Contains(msg, message) {
			return true
		}
	}
	return false
}

// ContainsField reports whether any record has key set to value. JSON numbers
// decode as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops all captured output.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}

// TestLoggerProvider is a LoggerProvider backed by a single TestLogger.
type TestLoggerProvider struct {
	*TestLogger
	level Level
}

// NewTestLoggerProvider creates a provider whose loggers all write into the
// returned TestLogger.
func NewTestLoggerProvider(level Level) *TestLoggerProvider {
	return &TestLoggerProvider{TestLogger: NewTestLogger(level), level: level}
}

// GetLogger implements LoggerProvider.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.TestLogger.Logger
}

// GetLoggerWithName implements LoggerProvider.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.TestLogger.Logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.level = level
	p.TestLogger.Logger = NewZerologLogger(p.TestLogger.buffer, level)
}
