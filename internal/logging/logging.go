package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger    zerolog.Logger
	setupOnce sync.Once
)

// setup initializes the underlying zerolog logger from environment variables.
func setup() {
	setupOnce.Do(func() {
		level := zerolog.InfoLevel

		if debug := os.Getenv("DEBUG"); debug != "" {
			switch strings.ToLower(debug) {
			case "1", "true", "yes", "on":
				level = zerolog.DebugLevel
			}
		}

		switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
		case "debug":
			level = zerolog.DebugLevel
		case "info":
			level = zerolog.InfoLevel
		case "warn", "warning":
			level = zerolog.WarnLevel
		case "error":
			level = zerolog.ErrorLevel
		}

		var out = zerolog.New(os.Stdout)
		if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
			out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
		}
		logger = out.Level(level).With().Timestamp().Logger()
	})
}

// Get returns the configured zerolog logger for callers that want
// structured fields rather than printf formatting.
func Get() zerolog.Logger {
	setup()
	return logger
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	setup()
	return logger.GetLevel() <= zerolog.DebugLevel
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug).
func Debug(format string, args ...interface{}) {
	setup()
	logger.Debug().Msgf(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	setup()
	logger.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	setup()
	logger.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	setup()
	logger.Error().Msgf(format, args...)
}

// Fatal logs an error message and exits.
func Fatal(format string, args ...interface{}) {
	setup()
	logger.Fatal().Msgf(format, args...)
}
