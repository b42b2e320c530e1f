// Package logging builds the logrus logger shared by crate's packages.
//
// The terminal belongs to the UI while it runs, so logs go to a file by
// default. Use "-" as the file to log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options selects level, format and destination.
type Options struct {
	Level  string
	Format string
	File   string
	// Output, when set, takes precedence over File.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger. The returned closer releases the log file, if any.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("log format %q: want text or json", opts.Format)
	}

	switch {
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
		return logger, nopCloser{}, nil
	case strings.TrimSpace(opts.File) == "-":
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	case strings.TrimSpace(opts.File) == "":
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	path := strings.TrimSpace(opts.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(file)
	return logger, file, nil
}
