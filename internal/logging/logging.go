// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level, format and destination.
type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, disabled.
	// Empty means info.
	Level string

	// Format is "text" for the console writer or "json". Empty means text.
	Format string

	// File, when set, receives a plain-text copy of every line, rotated
	// by size.
	File string

	WithCaller bool

	// Out is the primary destination. Nil means os.Stderr.
	Out io.Writer
}

// Init replaces log.Logger and the global level according to cfg.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = l
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var logWriter io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logWriter = zerolog.ConsoleWriter{Out: out}
	case "json":
		logWriter = out
	default:
		return errors.Errorf("invalid log format %q (want text or json)", cfg.Format)
	}

	if cfg.File != "" {
		logWriter = io.MultiWriter(
			logWriter,
			zerolog.ConsoleWriter{
				NoColor: true,
				Out: &lumberjack.Logger{
					Filename:   cfg.File,
					MaxSize:    10, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
				},
			})
	}

	ctx := zerolog.New(logWriter).With().Timestamp()
	if cfg.WithCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	zerolog.SetGlobalLevel(level)

	return nil
}
