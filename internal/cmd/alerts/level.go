package alerts

import (
	"fmt"

	"github.com/heliobs/magpie/internal/cmd/emoji"
)

// Level ranks the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates a non-fatal problem worth attention.
	LevelWarning
	// LevelInfo indicates a neutral notice.
	LevelInfo
	// LevelSuccess indicates a completed operation.
	LevelSuccess
)

// ANSI escape sequences for colored terminal output.
const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorReset  = "\033[0m"
)

var levelNames = map[Level]string{
	LevelError:   "error",
	LevelWarning: "warning",
	LevelInfo:    "info",
	LevelSuccess: "success",
}

var levelIcons = map[Level]string{
	LevelError:   emoji.Error,
	LevelWarning: emoji.Warning,
	LevelInfo:    emoji.Info,
	LevelSuccess: emoji.Success,
}

var levelColors = map[Level]string{
	LevelError:   colorRed,
	LevelWarning: colorYellow,
	LevelInfo:    colorCyan,
	LevelSuccess: colorGreen,
}

// String returns the lowercase level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(l))
}

// Icon returns the status symbol shown before the message.
func (l Level) Icon() string {
	if icon, ok := levelIcons[l]; ok {
		return icon
	}
	return emoji.Unknown
}

// Color returns the ANSI color sequence for the level.
func (l Level) Color() string {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return colorReset
}

// ResetColor returns the ANSI reset sequence.
func ResetColor() string {
	return colorReset
}
