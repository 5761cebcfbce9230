package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug|info|warn|error. Empty means info.
	Level string
	// Format is "console" for human-readable output, anything else means JSON.
	Format string
	// Quiet raises the level to error regardless of Level.
	Quiet bool
}

// New builds the process logger. All logging goes to stderr so that report
// output on stdout stays clean for piping.
func New(opt Options) zerolog.Logger {
	var out io.Writer = os.Stderr
	if opt.Format == "console" || opt.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	level := parseLevel(opt.Level)
	if opt.Quiet {
		level = zerolog.ErrorLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
