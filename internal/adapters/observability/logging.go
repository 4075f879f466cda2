package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLogger(env, os.Stdout)
}

func newLogger(env string, w io.Writer) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "hotel-residents").Logger()
}
