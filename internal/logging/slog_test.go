package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		key   string
		val   string
	}{
		{"DEBUG", "dbg", "a", "1"},
		{"INFO", "inf", "b", "2"},
		{"WARN", "wrn", "c", "3"},
		{"ERROR", "err", "d", "4"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%q in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.key+"="+tc.val) {
			t.Fatalf("expected attribute %s=%s in output:\n%s", tc.key, tc.val, out)
		}
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "feed").Info(context.Background(), "loaded", "count", 3)

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=loaded", "module=feed", "count=3"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestNewFileLogger_AppendsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noticeboard.log")

	log, closer, err := NewFileLogger(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Info(context.Background(), "first")
	log.Debug(context.Background(), "filtered out")
	require.NoError(t, closer.Close())

	log, closer, err = NewFileLogger(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Warn(context.Background(), "second", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"msg":"first"`)
	require.Contains(t, out, `"msg":"second"`)
	require.Contains(t, out, `"k":"v"`)
	require.NotContains(t, out, "filtered out")
}

func TestNewFileLogger_BadPath(t *testing.T) {
	_, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), slog.LevelInfo)
	require.Error(t, err)
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	log := NewNopLogger()
	ctx := context.TODO()
	log.Info(ctx, "ok")
	log.With("a", 1).Error(ctx, "ok")
}
