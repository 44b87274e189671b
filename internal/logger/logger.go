// Package logger configures structured logging and records crash reports.
package logger

import (
	"io"
	"log/slog"
)

// Setup installs a text slog handler on w as the default logger.
// Verbose enables debug output; otherwise only warnings and errors are shown.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}

// SetupServer installs an info-level handler for long-running server processes.
func SetupServer(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
