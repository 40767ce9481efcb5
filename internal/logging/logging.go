// Package logging configures the file logger. The TUI owns the terminal, so
// nothing is logged to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// DefaultPath returns $XDG_STATE_HOME/wavelet/wavelet.log, creating the
// directory if needed.
func DefaultPath() (string, error) {
	return xdg.StateFile("wavelet/wavelet.log")
}

// ParseLevel converts a config level name to a log level. Unknown names map
// to info.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New creates a logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Setup opens (appending) the log file at path and installs a logger on it
// as the default. The returned file must be closed on exit.
func Setup(path string, level log.Level) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := New(f, level)
	log.SetDefault(logger)
	logger.Debug("logging initialized", "path", path, "level", level)

	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
