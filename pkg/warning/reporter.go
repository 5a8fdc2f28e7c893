package warning

import (
	"github.com/rs/zerolog"
)

// Reporter receives warnings as they are raised. Implementations must
// treat Report as fire-and-forget: the resolution pipeline never
// inspects a result and never blocks on delivery.
type Reporter interface {
	Report(w Warning)
}

// Recorder is an append-only Reporter that keeps every warning in
// arrival order. Each resolution run owns its own Recorder.
type Recorder struct {
	warnings []Warning
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report implements Reporter.
func (r *Recorder) Report(w Warning) {
	r.warnings = append(r.warnings, w)
}

// Warnings returns the recorded warnings in arrival order.
func (r *Recorder) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len returns the number of recorded warnings.
func (r *Recorder) Len() int {
	return len(r.warnings)
}

// CountBy returns the number of recorded warnings in the category.
func (r *Recorder) CountBy(cat Category) int {
	n := 0
	for _, w := range r.warnings {
		if w.Category == cat {
			n++
		}
	}
	return n
}

// LogReporter forwards warnings to a zerolog logger at warn level.
type LogReporter struct {
	logger *zerolog.Logger
}

// NewLogReporter returns a Reporter writing to logger.
func NewLogReporter(logger *zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report implements Reporter.
func (l *LogReporter) Report(w Warning) {
	if l.logger == nil {
		return
	}
	evt := l.logger.Warn().
		Str("category", string(w.Category)).
		Str("severity", string(w.Severity))
	if w.Catalog != "" {
		evt = evt.Str("catalog", w.Catalog)
	}
	if w.Subject != "" {
		evt = evt.Str("subject", w.Subject)
	}
	evt.Msg(w.Detail)
}

// multi fans one warning out to several reporters.
type multi struct {
	reporters []Reporter
}

// Tee returns a Reporter that forwards each warning to every given
// reporter. Nil reporters are skipped.
func Tee(reporters ...Reporter) Reporter {
	m := &multi{}
	for _, r := range reporters {
		if r != nil {
			m.reporters = append(m.reporters, r)
		}
	}
	return m
}

// Report implements Reporter.
func (m *multi) Report(w Warning) {
	for _, r := range m.reporters {
		r.Report(w)
	}
}

// Discard is a Reporter that drops every warning.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Warning) {}
