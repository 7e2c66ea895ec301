package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyPage       = "page"
	KeyItem       = "item"
	KeyPath       = "path"
	KeyPlugin     = "plugin"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Page(rel string) slog.Attr       { return slog.String(KeyPage, rel) }
func Item(rel string) slog.Attr       { return slog.String(KeyItem, rel) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
