// Package logging builds the zerolog loggers used by the diffspec command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvVar selects the runtime environment. Any value other than "prod"
// annotates log lines with their source location.
const EnvVar = "DIFFSPEC_ENV"

// Options controls New.
type Options struct {
	// Verbosity 0 logs warnings and errors, 1 adds info, 2 or more adds debug.
	Verbosity int
	// JSON emits structured JSON instead of console output.
	JSON bool
	// Production drops caller information.
	Production bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(w).Level(Level(opts.Verbosity)).With().Timestamp()
	if !opts.Production {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Level maps a -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Production reports whether EnvVar is set to "prod".
func Production() bool {
	return os.Getenv(EnvVar) == "prod"
}
