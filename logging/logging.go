// Package logging builds the process logger and the results loggers that record the outcome of every tool invocation.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log formats understood by NewLogger.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewLogger creates the process logger. format is FormatConsole for human readable output or FormatJSON for one JSON object per line.
func NewLogger(out io.Writer, level string, format string) (logger zerolog.Logger, err error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		err = fmt.Errorf("invalid log level %q: %w", level, err)
		return
	}

	switch format {
	case FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		err = fmt.Errorf("invalid log format %q, expected %q or %q", format, FormatConsole, FormatJSON)
		return
	}

	logger = zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	return
}
