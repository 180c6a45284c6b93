package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// Format selects how log lines are written
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config represents logger configuration
type Config struct {
	// Level is a zerolog level name: debug, info, warn, error, fatal
	Level string
	// Format is json (default) or console/text for human-readable output
	Format Format
	// Output is the output writer (defaults to os.Stdout)
	Output io.Writer
}

// Configure sets the global level and rebuilds the default logger
func Configure(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = config.Output
	switch Format(strings.ToLower(string(config.Format))) {
	case FormatConsole, "text", "pretty":
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

// Get returns the configured default logger
func Get() zerolog.Logger {
	return defaultLogger
}

// Component returns a child logger tagged with the component name
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info logs an informational message
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal logs a fatal message and then exits
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// WithFields adds multiple fields to the logger
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return defaultLogger.With().Fields(fields).Logger()
}

func init() {
	Configure(Config{
		Level:  "info",
		Format: FormatConsole,
		Output: os.Stdout,
	})
}
