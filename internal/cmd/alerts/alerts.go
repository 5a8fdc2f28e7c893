// Package alerts renders user-facing notices for CLI commands.
package alerts

import (
	"fmt"
	"time"

	"github.com/heliobs/magpie/pkg/warning"
)

// Alert is one user-facing notice.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates an alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates an error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// FromWarning converts a resolution warning into a warning alert.
// The category and catalog survive in the message, the original
// event time in the timestamp.
func FromWarning(w warning.Warning) *Alert {
	return &Alert{
		Level:     LevelWarning,
		Message:   w.String(),
		Timestamp: w.Time.Time,
	}
}

// WithError attaches the underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends extra context lines shown under the message.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders the icon-prefixed one-line form.
func (a *Alert) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s %s: %v", a.Level.Icon(), a.Message, a.Err)
	}
	return fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
}
