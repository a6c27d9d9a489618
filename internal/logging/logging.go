// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Setup points the global logger at w (stderr when nil) in the given format
// and sets the global level. An unknown level falls back to info.
func Setup(w io.Writer, level, format string) {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if strings.EqualFold(format, FormatJSON) {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
