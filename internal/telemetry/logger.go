package telemetry

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevelEnv selects the minimum log level (debug, info, warn, error).
const LogLevelEnv = "MAZEDELVE_LOG_LEVEL"

// NewLogger returns a JSON logger tagged with the component name.
// A nil writer logs to stderr, since the terminal UI owns stdout.
// An unparseable MAZEDELVE_LOG_LEVEL is logged once and info is used.
func NewLogger(w io.Writer, component string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, rejected := levelFromEnv()
	log := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("component", component).
		Logger()
	if rejected != "" {
		log.Warn().Str("value", rejected).Msgf("invalid %s, using info", LogLevelEnv)
	}
	return log
}

// Component derives a child logger tagged with a subsystem name.
func Component(parent zerolog.Logger, subsystem string) zerolog.Logger {
	return parent.With().Str("subsystem", subsystem).Logger()
}

// levelFromEnv returns the configured level, and the raw value when it
// could not be parsed.
func levelFromEnv() (zerolog.Level, string) {
	raw := strings.TrimSpace(os.Getenv(LogLevelEnv))
	if raw == "" {
		return zerolog.InfoLevel, ""
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel, raw
	}
	return lvl, ""
}
