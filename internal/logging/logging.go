// Package logging builds the interpreter's diagnostic logger.
//
// Log records go to stderr so they never mix with program output, which is
// written to stdout by DISPLAY.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hassan/codeinterp/internal/config"
)

// Options holds configuration for creating a logger
type Options struct {
	// Level is one of debug, info, warn or error.
	Level string
	// Format is "text" or "json".
	Format string
	Output io.Writer
}

// FromConfig derives logger options from the log section of cfg.
func FromConfig(cfg config.LogConfig, output io.Writer) Options {
	return Options{Level: cfg.Level, Format: cfg.Format, Output: output}
}

// New creates a structured logger.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(opts.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(output, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(output, handlerOpts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", opts.Format)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
