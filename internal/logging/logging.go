// Package logging opens the application log file.
//
// The TUI owns the terminal, so log output always goes to a file and never
// to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Open returns a logger writing to path at the given level, and a closer
// for the underlying file. An empty path discards all output.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	if path == "" {
		return New(io.Discard, lvl), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return New(f, lvl), f, nil
}

// New returns a logfmt logger writing to w
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "tasks-tui",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
