// Package logging configures the application's zerolog output.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format names a log output format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel converts a level string into a zerolog level, defaulting to
// info for empty or unknown values.
func ParseLevel(levelStr string) zerolog.Level {
	if levelStr == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// New builds a logger writing to w in the given format and level. At debug
// and below the caller is included.
func New(w io.Writer, levelStr, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := ParseLevel(levelStr)

	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger().Level(level)
}
