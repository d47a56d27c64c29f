package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures the global zerolog logger. Debug overrides the
// configured level.
func setupLogging(level string, debug bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	zerolog.SetGlobalLevel(parseLogLevel(level))
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// parseLogLevel maps a config string to a zerolog level, defaulting to warn.
func parseLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

func debugLog(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}
