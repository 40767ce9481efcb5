//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, the speaker
// backend) write directly to file descriptor 2, bypassing os.Stderr. Raw
// writes would corrupt the TUI layout, so captured lines go to the logger.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and forwards every non-empty line to
// logger at warn level. It must run before the audio device is opened. On
// failure the program can continue; output then reaches the terminal.
func Start(logger *log.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go func(ch chan struct{}) {
		defer close(ch)
		Forward(r, logger)
	}(done)

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

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must be visible after the TUI exits.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()

	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be
// logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if pipeRead == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	<-done
	pipeRead.Close()

	pipeRead, pipeWrite, done = nil, nil, nil
}
