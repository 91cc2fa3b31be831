package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T, tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core), tracing), logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerClient(t *testing.T) {
	log, err := NewLoggerClient(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, log.Zap)
	assert.True(t, log.Zap.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Zap.Core().Enabled(zapcore.DebugLevel))
}

func TestLoggerClient_Fields(t *testing.T) {
	log, logs := newObserved(t, false)

	log.Warn("insecure", errors.New("boom"), map[string]interface{}{"host": "a"}, map[string]interface{}{"host": "b", "port": 6333})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "insecure", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "b", ctx["host"])
	assert.EqualValues(t, 6333, ctx["port"])
}

func TestLoggerClient_Levels(t *testing.T) {
	log, logs := newObserved(t, false)

	log.Debug("d", nil)
	log.Info("i", nil)
	log.Warn("w", nil)
	log.Error("e", nil)

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("e").FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLoggerClient_TraceFields(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log, logs := newObserved(t, true)
	log.InfoWithContext(ctx, "traced", nil)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestLoggerClient_TracingDisabled(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log, logs := newObserved(t, false)
	log.WarnWithContext(ctx, "untraced", nil)

	_, ok := logs.All()[0].ContextMap()["trace_id"]
	assert.False(t, ok)
}
