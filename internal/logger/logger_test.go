package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLines decodes each JSON log entry written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger_StampsRoleAndTime(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("payroll-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("run sealed")

	entries := logLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "payroll-server", entries[0]["role"])
	assert.Equal(t, "run sealed", entries[0]["message"])
	assert.Contains(t, entries[0], "time")
}

func TestNewLogger_CallerRecordsFunctionName(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("gateway-sweeper")
	l.Logger = l.Output(&buf)

	l.Info().Msg("sweep pass")

	entries := logLines(t, &buf)
	require.Len(t, entries, 1)

	// The caller hook swaps file:line for the qualified function name, which
	// is what makes grep-by-component work in aggregated logs.
	caller, ok := entries[0]["func"].(string)
	require.True(t, ok, "expected a func field, got: %v", entries[0])
	assert.Contains(t, caller, "internal/logger.TestNewLogger_CallerRecordsFunctionName")
}

func TestNewLogger_DebugLevelEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("operator-client")
	l.Logger = l.Output(&buf)

	l.Debug().Msg("poll tick")

	require.Len(t, logLines(t, &buf), 1, "debug entries must not be filtered out")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsEverything(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	// The nop logger is disabled at the level filter, so entries vanish even
	// when a writer is attached.
	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Info().Msg("dropped")
	l.Error().Msg("also dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_ChildFieldsStayOnChild(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("payroll-server")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "run-due-watcher")
	})

	child.Info().Msg("next run due")
	parent.Info().Msg("still serving")

	entries := logLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "payroll-server", entries[0]["role"], "child inherits the parent fields")
	assert.Equal(t, "run-due-watcher", entries[0]["worker"])

	assert.Equal(t, "payroll-server", entries[1]["role"])
	assert.NotContains(t, entries[1], "worker", "parent must not pick up child fields")
}

func TestFromContext(t *testing.T) {
	t.Run("returns the attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "req-7").Logger()
		ctx := zl.WithContext(context.Background())

		FromContext(ctx).Info().Msg("decryption fulfilled")

		entries := logLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0]["trace_id"])
	})

	t.Run("bare context still yields a usable logger", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		l.Info().Msg("no context logger attached")
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-9").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("listing runs")

	entries := logLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-9", entries[0]["trace_id"])
	assert.Equal(t, "listing runs", entries[0]["message"])
}
