// Package logger provides the shared slog constructor for jot's serve modes.
package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Option configures a Logger created with New.
type Option func(*config)

type config struct {
	level  slog.Level
	json   bool
	writer io.Writer
}

// WithDebug sets the log level to Debug when true, Info otherwise.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = slog.LevelDebug
		} else {
			c.level = slog.LevelInfo
		}
	}
}

// WithJSON enables slog's JSON handler for structured service logs instead of
// the colorized charmbracelet handler.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// WithWriter overrides the output writer. Defaults to os.Stderr so log lines
// never interleave with JSON written to stdout by the CLI or MCP transport.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// New builds a *slog.Logger from the given options.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:  slog.LevelInfo,
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.json {
		return slog.New(slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level}))
	}

	charmLevel := charmlog.InfoLevel
	if c.level == slog.LevelDebug {
		charmLevel = charmlog.DebugLevel
	}

	handler := charmlog.NewWithOptions(c.writer, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmLevel,
	})
	return slog.New(handler)
}
