//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the console.
package stderr

import (
	"os"

	"github.com/charmbracelet/log"
)

// Messages is never written on Windows.
var Messages = make(chan string)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Forward is a no-op on Windows.
func Forward(*log.Logger) {}

// Stop is a no-op on Windows.
func Stop() {}
