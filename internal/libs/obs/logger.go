// Package obs provides structured logging for the catalog services.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a level name onto a zerolog level, falling back to info
// for empty or unknown names
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// InitLogger initializes the global logger and returns the level in effect
func InitLogger(level string) zerolog.Level {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	// Pretty print in development
	if os.Getenv("ENV") == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return lvl
}

// Logger returns a new logger with the given component name
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// NewLogger returns a component logger writing JSON lines to w
func NewLogger(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}
