package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. With a log file the output is JSON
// lines appended to it; otherwise a console writer on stderr, or nothing when
// quiet is set (the terminal frontend owns stdout/stderr).
func NewLogger(cfg Config, quiet bool) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
	}

	if quiet {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), io.NopCloser(nil), nil
}
