// Package testutil holds helpers shared by restoreport package tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug logger that forwards each record to t.Log.
// Records only show for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return newDebugLogger(tbWriter{t})
}

// NewCaptureLogger returns a debug logger and the buffer it writes to.
// Timestamps are omitted so records can be matched as text.
func NewCaptureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return newDebugLogger(&buf), &buf
}

func newDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
