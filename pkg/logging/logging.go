// Package logging builds the *slog.Logger shared by the matching engine,
// the management API, and the httpmockd CLI. The surface is deliberately
// small: one constructor taking the raw level/format strings the CLI flags
// and HTTPMOCK_* environment variables carry, and a no-op logger for
// library callers that don't want output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger from the raw level and format strings.
// Unrecognized values degrade to "info" and "text" rather than erroring: a
// misspelled log flag should never keep a mock server from serving. A nil w
// writes to stderr.
func New(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Nop returns a logger that discards everything. Engine and the admin API
// fall back to it when the caller supplies no logger, so a test fixture
// stays silent by default.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
