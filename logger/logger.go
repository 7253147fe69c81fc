package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared application logger. Init replaces it; the zero value
// writes JSON to stdout so packages can log before Init runs.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the shared logger from LOG_LEVEL and LOG_FORMAT.
// Format "console" gives human-readable output for local runs; anything
// else keeps JSON.
func Init() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		Log = zerolog.New(output).Level(level).With().Timestamp().Logger()
		return
	}

	Log = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
