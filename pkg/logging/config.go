package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/astromap/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level written (trace, debug, info, warn, error).
	Level string
	// Format is json, console or auto.
	Format string
	// Output is stderr, stdout, discard or a file path.
	Output string
	// NoColor disables color in console mode.
	NoColor bool
	// AddCaller includes file:line in every event.
	AddCaller bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger from cfg and sets the global level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writerFor(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

func writerFor(cfg *Config) io.Writer {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "discard", "none":
		output = io.Discard
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			output = os.Stderr
		} else {
			output = file
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		format = "json"
		if output == os.Stderr && stderrIsTerminal() {
			format = "console"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}
	return output
}

// ParseLevel converts a level name into a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}
