// Package logging wraps zerolog for the magpie resolution pipeline.
//
// The default logger writes human-readable console output when stderr
// is a terminal and JSON otherwise. All timestamps are UTC, matching
// the retrieval timestamps on resolution results.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("catalog", "APASS").Msg("Querying survey")
//
//	ctx := logging.WithCatalog(ctx, "SDSS")
//	logging.Ctx(ctx).Debug().Msg("Selecting row")
//
//	log.Error().
//	    Err(err).
//	    Str("target", "HD 40979").
//	    Int64("source_id", 251571175927201536).
//	    Msg("Failed to resolve target")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/agentstation/utc"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the process-wide logger. Commands replace it via
// SetDefault once flags are parsed; everything else reaches it through
// Default, the package-level event helpers, or FromContext.
var defaultLogger zerolog.Logger

func init() {
	// Result timestamps are UTC; log timestamps follow suit.
	zerolog.TimestampFunc = func() time.Time { return utc.Now().Time }
	defaultLogger = bootstrap()
}

// bootstrap builds the pre-configuration logger used until a command
// or test installs its own: console on a terminal, JSON otherwise,
// level from LOG_LEVEL (or DEBUG as a shortcut).
func bootstrap() zerolog.Logger {
	level := envLevel()
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if terminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		w = console(os.Stderr, time.Kitchen, os.Getenv("NO_COLOR") != "")
	}

	return build(w, level, level <= zerolog.DebugLevel)
}

// build assembles a logger with timestamps and optional caller info.
func build(w io.Writer, level zerolog.Level, caller bool) zerolog.Logger {
	lc := zerolog.New(w).Level(level).With().Timestamp()
	if caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

// console wraps out in zerolog's human-readable writer.
func console(out io.Writer, timeFormat string, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    noColor,
	}
}

// terminal reports whether f is attached to a terminal.
func terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// envLevel reads the bootstrap log level from the environment.
func envLevel() zerolog.Level {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			return l
		}
	}
	if os.Getenv("DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger. zerolog's own global
// logger is updated too so code logging through log.Logger agrees.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New returns a JSON logger writing to w at the global level.
// A nil writer falls back to stderr.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return build(w, zerolog.GlobalLevel(), false)
}

// With opens a field context on the process-wide logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a debug event on the process-wide logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the process-wide logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn event on the process-wide logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error event on the process-wide logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal starts a fatal event on the process-wide logger. The process
// exits after the message is written.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// Err starts an event whose level depends on err: error when non-nil,
// info otherwise.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
