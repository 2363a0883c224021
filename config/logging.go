package config

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging sets the global log level. A console writer gives human
// readable lines for the terminal; otherwise logs stay JSON.
func SetupLogging(level string, out io.Writer, console bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
