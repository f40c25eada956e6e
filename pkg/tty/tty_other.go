//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package tty

import (
	"os"
	"time"
)

// RawMode is a no-op on this platform.
type RawMode struct{}

// EnableRawInput always fails with ErrUnsupported on this platform.
func EnableRawInput(*os.File) (*RawMode, error) {
	return nil, ErrUnsupported
}

// Restore does nothing.
func (*RawMode) Restore() error {
	return nil
}

// Keyboard is unavailable on this platform.
type Keyboard struct{}

// NewKeyboard returns a keyboard whose methods all fail.
func NewKeyboard(*os.File) *Keyboard {
	return &Keyboard{}
}

// Poll fails with ErrUnsupported.
func (*Keyboard) Poll(time.Duration) (bool, error) {
	return false, ErrUnsupported
}

// ReadByte fails with ErrUnsupported.
func (*Keyboard) ReadByte() (byte, error) {
	return 0, ErrUnsupported
}
