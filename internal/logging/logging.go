// Package logging configures the process-wide zerolog logger, the same
// structured-logging library used elsewhere in the corpus this server draws
// on (see DESIGN.md).
package logging

import (
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global zerolog logger to a console writer in dev mode, or
// plain JSON lines otherwise, and wires zerolog as the standard logger too
// so third-party packages that call log.Printf still end up structured.
func Init(debug bool, pretty bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	log.Logger = logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)
}
