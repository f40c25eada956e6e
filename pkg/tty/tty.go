// Package tty puts the controlling terminal into the modes the animation
// needs and talks to it: raw keyboard input with a bounded poll, and
// full-frame redraws.
package tty

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when a terminal operation is attempted on a
	// file that is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrUnsupported is returned on platforms without termios support.
	ErrUnsupported = errors.New("terminal control is not supported on this platform")
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the visible width and height of the terminal f is connected
// to.
func Size(f *os.File) (width, height int, err error) {
	if !IsTerminal(f) {
		return 0, 0, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
	}
	width, height, err = term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	return width, height, nil
}
