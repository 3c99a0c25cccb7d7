// Package logging builds the slog logger shared by the CLI components.
//
// Diagnostics go to stderr in logfmt-style text so they never mix with the
// command printed on stdout. Without --verbose only warnings and errors are
// emitted; with it every pipeline step is traced at debug level.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv overrides the level derived from --verbose
const LevelEnv = "GPT_CMD_LOG_LEVEL"

// New returns a text logger writing to w
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if env := os.Getenv(LevelEnv); env != "" {
		level = ParseLevel(env)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to warn
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
