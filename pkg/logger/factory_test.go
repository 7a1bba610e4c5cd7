package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poly1603/ldesign-validator/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("rule failure record", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.For(logger.New(logger.WithOutput(buf)), "validator")

		log.Error("validation rule failed",
			logger.Rule("email"),
			logger.Field("user.email"),
			logger.Code("RULE_ERROR"),
		)

		entry := decode(t, buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "validator", entry["component"])
		assert.Equal(t, "email", entry["rule"])
		assert.Equal(t, "user.email", entry["field"])
		assert.Equal(t, "RULE_ERROR", entry["code"])
	})

	t.Run("info is the default level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Debug("expired cache entries removed", logger.Count("removed", 3))
		assert.Zero(t, buf.Len())
	})

	t.Run("level can change at runtime", func(t *testing.T) {
		buf := &bytes.Buffer{}
		level := new(slog.LevelVar)
		level.Set(slog.LevelInfo)
		log := logger.For(logger.New(logger.WithOutput(buf), logger.WithLevel(level)), "cache")

		log.Debug("expired cache entries removed", logger.Count("removed", 3))
		assert.Zero(t, buf.Len())

		level.Set(slog.LevelDebug)
		log.Debug("expired cache entries removed", logger.Count("removed", 3))
		entry := decode(t, buf)
		assert.Equal(t, "cache", entry["component"])
		assert.Equal(t, float64(3), entry["removed"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))

		log.Warn("invalid field transform", logger.Field("name"))
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "field=name")
	})

	t.Run("unknown format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("request id from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type ctxKey struct{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("request_id", ctxKey{}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
		log.ErrorContext(ctx, "validation rule failed", logger.Rule("unique_email"))

		entry := decode(t, buf)
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, "unique_email", entry["rule"])
	})

	t.Run("context without value adds nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type ctxKey struct{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("request_id", ctxKey{}))

		log.InfoContext(context.Background(), "msg")
		assert.NotContains(t, decode(t, buf), "request_id")
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("applies level format and service", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cfg := logger.Config{Level: slog.LevelDebug, Format: "TEXT", Service: "signup"}

		log, err := logger.NewFromConfig(cfg, logger.WithOutput(buf))
		require.NoError(t, err)

		log.Debug("expired cache entries removed")
		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=signup")
	})

	t.Run("default config", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(logger.DefaultConfig(), logger.WithOutput(buf))
		require.NoError(t, err)

		log.Info("msg")
		entry := decode(t, buf)
		assert.NotContains(t, entry, "service")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logger.NewFromConfig(logger.Config{Format: "xml"})
		require.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Format
	}{
		{"", logger.FormatJSON},
		{"json", logger.FormatJSON},
		{" Text ", logger.FormatText},
	}
	for _, tt := range tests {
		got, err := logger.ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := logger.ParseFormat("yaml")
	assert.ErrorIs(t, err, logger.ErrInvalidFormat)
}

func TestFor(t *testing.T) {
	assert.Nil(t, logger.For(nil, "validator"))
	assert.NotNil(t, logger.For(logger.Nop(), "validator"))
}

func TestNop(t *testing.T) {
	log := logger.Nop()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
