//go:build !windows

// Package stderr redirects file descriptor 2 into a pipe so that the audio
// backend (ALSA via oto) cannot write over the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// Messages receives captured stderr lines.
var Messages = make(chan string, 100)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start begins capturing stderr. Call it before the speaker is initialized.
// On error nothing is redirected.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	err = unix.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		unix.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				select {
				case Messages <- line:
				default:
				}
			}
		}
	}()

	return nil
}

// WriteOriginal writes to the real stderr, bypassing capture.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = unix.Write(origStderr, []byte(msg))
	}
}

// Stop restores the original stderr.
func Stop() {
	if !started {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)

	pipeWrite.Close()
	pipeRead.Close()

	close(Messages)
	started = false
}

// Forward logs captured lines at debug level until Stop closes Messages.
func Forward(logger *log.Logger) {
	go func() {
		for line := range Messages {
			logger.Debug("audio backend", "stderr", line)
		}
	}()
}
