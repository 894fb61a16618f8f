// SPDX-License-Identifier: MIT

// Package logging builds the slog loggers used by the synconnect CLI and
// handed to library packages through their WithLogger options.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Level names accepted by ParseLevel and the logging.level config key.
const (
	LevelNameDebug = "debug"
	LevelNameInfo  = "info"
	LevelNameWarn  = "warn"
	LevelNameError = "error"
)

// ValidLevel reports whether s names a level (case-insensitive). The empty
// string is valid and means info.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", LevelNameDebug, LevelNameInfo, LevelNameWarn, LevelNameError:
		return true
	}
	return false
}

// ParseLevel maps a level name to a slog.Level.
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case LevelNameDebug:
		return slog.LevelDebug
	case LevelNameWarn:
		return slog.LevelWarn
	case LevelNameError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewJSONLogger is NewLogger with one JSON object per record.
func NewJSONLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
