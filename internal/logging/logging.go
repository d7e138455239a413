// Package logging builds the zerolog logger shared by the CLI commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level    string    // zerolog level name; empty means info
	File     string    // append to this file when set
	Fallback io.Writer // used when File is empty; nil discards
}

// New returns a logger and a close func for any file it opened.
// The close func is always non-nil.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	if opts.File == "" {
		if opts.Fallback == nil {
			return zerolog.Nop(), noop, nil
		}
		w := zerolog.ConsoleWriter{Out: opts.Fallback, TimeFormat: time.TimeOnly, NoColor: true}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("logging: creating log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("logging: opening %s: %w", opts.File, err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f.Close, nil
}
