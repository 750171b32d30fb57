package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger. Diagnostics go to w (stderr in practice)
// so structured command output on stdout stays parseable. The core packages
// never log; everything they report comes back as typed errors, and the CLI
// decides what to surface here.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
