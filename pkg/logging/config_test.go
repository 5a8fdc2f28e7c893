package logging_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/heliobs/magpie/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	// Save and restore the original logger and level
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file", func(t *testing.T) {
		tmpfile, err := os.CreateTemp("", "magpie-log-*.txt")
		assert.NoError(t, err)
		defer os.Remove(tmpfile.Name())
		defer tmpfile.Close()

		cfg := &logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    tmpfile.Name(),
			AddCaller: true,
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Str("catalog", "GALEX").Msg("query issued")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		assert.Contains(t, string(content), "query issued")
		assert.Contains(t, string(content), "GALEX")
	})

	t.Run("Configure applies level filtering", func(t *testing.T) {
		tmpfile, err := os.CreateTemp("", "magpie-log-*.txt")
		assert.NoError(t, err)
		defer os.Remove(tmpfile.Name())
		defer tmpfile.Close()

		cfg := &logging.Config{
			Level:  "warn",
			Format: "json",
			Output: tmpfile.Name(),
		}

		logging.Configure(cfg)

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("ConfigureFromEnv reads from environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "discard")

		logging.ConfigureFromEnv()
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("console format uses short level names", func(t *testing.T) {
		tmpfile, err := os.CreateTemp("", "magpie-log-*.txt")
		assert.NoError(t, err)
		defer os.Remove(tmpfile.Name())
		defer tmpfile.Close()

		cfg := &logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  tmpfile.Name(),
			NoColor: true,
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Str("band", "PS1_g").Msg("console test")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("default fields attach to every event", func(t *testing.T) {
		tmpfile, err := os.CreateTemp("", "magpie-log-*.txt")
		assert.NoError(t, err)
		defer os.Remove(tmpfile.Name())
		defer tmpfile.Close()

		cfg := &logging.Config{
			Level:  "info",
			Format: "json",
			Output: tmpfile.Name(),
			Fields: map[string]any{"service": "magpie"},
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Msg("one")

		content, err := os.ReadFile(tmpfile.Name())
		assert.NoError(t, err)
		assert.Contains(t, string(content), `"service":"magpie"`)
	})
}

func TestLoggerFunctions(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	t.Run("SetDefault routes package functions", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logging.Info().Msg("test with new default")
		assert.Contains(t, buf.String(), "test with new default")
	})

	t.Run("New creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger := logging.New(&buf)
		logger.Info().Msg("json test")

		output := buf.String()
		assert.Contains(t, output, "json test")
		assert.Contains(t, output, `"level":"info"`)
	})

	t.Run("Err adds error to event", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.ErrorLevel))

		err := assert.AnError
		logging.Err(err).Msg("error test")

		output := buf.String()
		assert.Contains(t, output, "error test")
		assert.Contains(t, output, err.Error())
	})

	t.Run("With creates context for fields", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logger := logging.With().
			Str("component", "resolver").
			Int("catalogs", 8).
			Logger()

		logger.Info().Msg("with context")

		output := buf.String()
		assert.Contains(t, output, `"component":"resolver"`)
		assert.Contains(t, output, `"catalogs":8`)
	})
}
