package config

import (
	"log/slog"
	"strings"
)

// Verbosity is the two-valued logging setting controlling whether
// plugin-invocation and per-file diagnostics are printed.
type Verbosity string

const (
	VerbosityMinimum  Verbosity = "minimum"
	VerbosityComplete Verbosity = "complete"
)

// NormalizeVerbosity maps raw input onto a supported verbosity, defaulting to
// minimum.
func NormalizeVerbosity(raw string) Verbosity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(VerbosityComplete):
		return VerbosityComplete
	default:
		return VerbosityMinimum
	}
}

// Level maps the verbosity onto an slog level.
func (v Verbosity) Level() slog.Level {
	if v == VerbosityComplete {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
