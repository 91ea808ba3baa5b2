package cliconfig

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the CLI logger. With an empty file, human-readable output
// goes to stderr. Otherwise JSON lines are appended to file and the returned
// func closes it.
func Logger(level, file string) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
	}

	var out io.Writer
	closeFn := func() error { return nil }

	if file == "" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	} else {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closeFn, nil
}

// InteractiveLogger builds the logger used while the terminal UI owns the
// screen: file output when configured, otherwise nothing.
func InteractiveLogger(level, file string) (zerolog.Logger, func() error, error) {
	if file == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	return Logger(level, file)
}
