// Package logging builds the diagnostic zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Options selects where diagnostics go
type Options struct {
	Level zerolog.Level
	File  string    // append to this file when set
	Out   io.Writer // used when File is empty; nil discards
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates the logger. The returned closer releases the log file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)

	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05", NoColor: true}
		closer = f
	case opts.Out != nil:
		out = zerolog.ConsoleWriter{Out: opts.Out, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).
		Level(opts.Level).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}
