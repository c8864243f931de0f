// Package logging provides structured logging for astromap on top of zerolog.
// Terminals get human-readable console output, everything else gets JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("page", "Items").Msg("Parsing page")
//
//	ctx := logging.WithParser(context.Background(), "Resources")
//	logging.FromContext(ctx).Debug().Int("items", 12).Msg("Parsed partial record")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := levelFromEnv()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default global logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a new debug level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func levelFromEnv() zerolog.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
