//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio backends don't write to fd 2 behind Go's back.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Start is a no-op on Windows.
func Start(*log.Logger) error {
	return nil
}

// Forward logs each non-empty line read from r until EOF.
func Forward(r io.Reader, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("stderr")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			logger.Warn(line)
		}
	}
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
