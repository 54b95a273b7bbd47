package log

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerInterface tests the zerolog backed Logger
func TestLoggerInterface(t *testing.T) {
	testLogger := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationTeach)
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", fmt.Errorf("test error"), ErrorCodeKey, ErrorNumerical)

	require.NotEmpty(t, testLogger.String())

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), "missing %q", msg)
	}

	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField("error", "test error"))
	assert.True(t, testLogger.ContainsField("level", "error"))
}

// TestLoggerWith tests contextual fields
func TestLoggerWith(t *testing.T) {
	testLogger := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "OneVsRest",
		ComponentKey, "train",
	)
	contextLogger.Info("epoch finished", EpochKey, 3, AccuracyKey, 0.96)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "OneVsRest"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "train"))
	assert.True(t, testLogger.ContainsField(EpochKey, 3.0))
	assert.True(t, testLogger.ContainsField(AccuracyKey, 0.96))
}

// TestLoggerEnabled tests level filtering
func TestLoggerEnabled(t *testing.T) {
	testLogger := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

// TestErrorStackField checks that cockroachdb stacks are rendered
func TestErrorStackField(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "debug"))
	defer errors.SetZerologWarnFunc(nil)

	err := errors.NewDimensionError("dataset.CSV", 4, 2, 1)
	GetLoggerWithName("dataset").Error("bad row", err, "line", 3)

	out := buf.String()
	assert.Contains(t, out, `"stack"`)
	assert.Contains(t, out, `"type":"DimensionError"`)
	assert.Contains(t, out, `"ml.component":"dataset"`)
}

// TestSetupLoggerRoutesWarnings checks that errors.Warn reaches the zerolog logger
func TestSetupLoggerRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "info"))
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewModelDriftWarning("DDM", 3.5, 3.0, "alert", 42))

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"detector":"DDM"`)
	assert.Contains(t, out, "model drift detected")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("test-component").Info("named logger message")

	assert.True(t, provider.ContainsMessage("provider test message"))
	assert.True(t, provider.ContainsField(ComponentKey, "test-component"))

	provider.SetLevel(LevelError)
	provider.GetLogger().Info("dropped")
	assert.False(t, provider.ContainsMessage("dropped"))
}

// TestConcurrentLogging tests that concurrent writers do not lose records
func TestConcurrentLogging(t *testing.T) {
	testLogger := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info("concurrent", "goroutine_id", id, "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func BenchmarkLoggingWithContext(b *testing.B) {
	testLogger := NewTestLogger(LevelInfo)
	contextLogger := testLogger.With(ModelNameKey, "Logistic", ComponentKey, "bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("event", EventsSeenKey, i)
	}
}
