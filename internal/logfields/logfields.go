package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyManager    = "manager"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyRunID      = "run_id"
	KeyOutcome    = "outcome"
	KeyVersion    = "version"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }
func Manager(m string) slog.Attr      { return slog.String(KeyManager, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
