// Package logging configures the zerolog logger shared by the CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. It is silent below warn until Init
// enables debug output.
var Logger = New(os.Stderr, false)

// New returns a console logger writing to w.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		FormatCaller: func(i interface{}) string {
			s, _ := i.(string)
			return filepath.Base(s)
		},
	}
	ctx := zerolog.New(cw).Level(level).With().Timestamp()
	if debug {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Init replaces Logger and the zerolog global logger.
func Init(debug bool) {
	Logger = New(os.Stderr, debug)
	log.Logger = Logger
}

// For returns Logger tagged with a module field.
func For(module string) zerolog.Logger {
	return Logger.With().Str("module", module).Logger()
}
