package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPost       = "post"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyAddr       = "addr"
	KeyURL        = "url"
	KeySubject    = "subject"
	KeyRule       = "rule"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Post(id string) slog.Attr        { return slog.String(KeyPost, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
