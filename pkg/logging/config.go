package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum level to emit (trace .. disabled).
	Level string

	// Format selects the encoder: json, console, pretty, or auto.
	Format string

	// Output is the destination: stderr, stdout, discard, or a file path.
	Output string

	// TimeFormat names the console timestamp layout (kitchen, rfc3339, ...).
	TimeFormat string

	// NoColor disables color in console mode.
	NoColor bool

	// AddCaller includes file:line on every event.
	AddCaller bool

	// Fields are attached to every event the logger emits.
	Fields map[string]any
}

// DefaultConfig returns the configuration the CLI starts from.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     make(map[string]any),
	}
}

// NewLoggerFromConfig builds a logger from cfg and moves the global
// level to match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := build(writerFor(cfg), level, cfg.AddCaller || level <= zerolog.DebugLevel)

	if len(cfg.Fields) > 0 {
		lc := logger.With()
		for k, v := range cfg.Fields {
			lc = addField(lc, k, v)
		}
		logger = lc.Logger()
	}

	return logger
}

// Configure builds a logger from cfg and installs it as the default.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ConfigureFromEnv installs a default logger driven by LOG_LEVEL,
// LOG_FORMAT, LOG_OUTPUT, LOG_TIME_FORMAT, LOG_CALLER and LOG_FIELDS.
func ConfigureFromEnv() {
	Configure(&Config{
		Level:      getEnvOrDefault("LOG_LEVEL", "info"),
		Format:     getEnvOrDefault("LOG_FORMAT", "auto"),
		Output:     getEnvOrDefault("LOG_OUTPUT", "stderr"),
		TimeFormat: getEnvOrDefault("LOG_TIME_FORMAT", "kitchen"),
		NoColor:    os.Getenv("NO_COLOR") != "",
		AddCaller:  os.Getenv("LOG_CALLER") == "true",
		Fields:     parseFields(os.Getenv("LOG_FIELDS")),
	})
}

// writerFor resolves the destination and wraps it for console formats.
// Format auto means console when writing to a terminal on stderr,
// JSON everywhere else.
func writerFor(cfg *Config) io.Writer {
	out := destination(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		format = "json"
		if f, ok := out.(*os.File); ok && f == os.Stderr && terminal(f) {
			format = "console"
		}
	}

	switch format {
	case "console", "pretty":
		return console(out, timeLayout(cfg.TimeFormat), cfg.NoColor)
	default:
		return out
	}
}

// destination maps an output name to a writer. Unrecognized names are
// opened as append-only files; on failure stderr is used.
func destination(name string) io.Writer {
	switch strings.ToLower(name) {
	case "stderr", "":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

// levelAliases covers spellings zerolog's parser rejects.
var levelAliases = map[string]zerolog.Level{
	"warning": zerolog.WarnLevel,
	"none":    zerolog.Disabled,
	"off":     zerolog.Disabled,
}

// parseLevel resolves a level name, falling back to info.
func parseLevel(name string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return zerolog.InfoLevel
	}
	if l, ok := levelAliases[s]; ok {
		return l
	}
	if l, err := zerolog.ParseLevel(s); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

// consoleTimeLayouts maps layout names accepted in configuration.
// An empty layout makes the console writer print Unix timestamps.
var consoleTimeLayouts = map[string]string{
	"kitchen":     time.Kitchen,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"stamp":       time.Stamp,
	"unix":        "",
	"epoch":       "",
}

// timeLayout resolves a console timestamp layout name. Strings that
// look like Go reference layouts pass through unchanged.
func timeLayout(name string) string {
	if layout, ok := consoleTimeLayouts[strings.ToLower(name)]; ok {
		return layout
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}

// parseFields splits comma-separated key=value pairs.
func parseFields(s string) map[string]any {
	fields := make(map[string]any)
	if s == "" {
		return fields
	}

	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return fields
}

// addField appends one typed field to a logger context.
func addField(lc zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return lc.Str(key, v)
	case int:
		return lc.Int(key, v)
	case int64:
		return lc.Int64(key, v)
	case uint64:
		return lc.Uint64(key, v)
	case float64:
		return lc.Float64(key, v)
	case bool:
		return lc.Bool(key, v)
	case time.Time:
		return lc.Time(key, v)
	case error:
		if key == "error" || key == "err" {
			return lc.Err(v)
		}
		return lc.Str(key, v.Error())
	default:
		return lc.Interface(key, v)
	}
}

// getEnvOrDefault returns an environment value or the fallback.
func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
