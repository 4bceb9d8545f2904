package systems

import "log/slog"

// TraceSink receives fine-grained biology events for a focused organism.
// The biology calls Enabled before formatting attributes so tracing has
// zero cost for the 99.99% of organisms nobody is watching.
type TraceSink interface {
	Enabled(id uint32) bool
	Event(id uint32, now float64, msg string, args ...any)
}

// NopTrace discards everything.
type NopTrace struct{}

func (NopTrace) Enabled(uint32) bool                   { return false }
func (NopTrace) Event(uint32, float64, string, ...any) {}

// FocusTrace forwards events for a single organism ID to slog at debug
// level, tagging each record with the organism and simulation time.
type FocusTrace struct {
	FocusID uint32
	Logger  *slog.Logger
}

// NewFocusTrace traces the given organism on the given logger
// (slog.Default() if nil).
func NewFocusTrace(id uint32, logger *slog.Logger) *FocusTrace {
	if logger == nil {
		logger = slog.Default()
	}
	return &FocusTrace{FocusID: id, Logger: logger}
}

func (t *FocusTrace) Enabled(id uint32) bool {
	return id == t.FocusID
}

func (t *FocusTrace) Event(id uint32, now float64, msg string, args ...any) {
	if id != t.FocusID {
		return
	}
	t.Logger.Debug(msg, append([]any{"organism_id", id, "sim_time", now}, args...)...)
}
