//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// RawMode holds the terminal settings saved by EnableRawInput.
type RawMode struct {
	fd    int
	saved unix.Termios
	once  sync.Once
	err   error
}

// EnableRawInput turns off line buffering and echo on f so single key
// presses can be read as they arrive. Output processing and signal keys are
// left alone. The returned guard must be released with Restore, normally
// with defer right after the call.
func EnableRawInput(f *os.File) (*RawMode, error) {
	if !IsTerminal(f) {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
	}
	fd := int(f.Fd())

	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("read terminal settings: %w", err)
	}
	m := &RawMode{fd: fd, saved: *termios}

	raw := *termios
	raw.Lflag &^= unix.ECHO | unix.ICANON
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("enable raw input: %w", err)
	}
	return m, nil
}

// Restore puts back the settings saved by EnableRawInput. Only the first
// call touches the terminal; later calls return the same result.
func (m *RawMode) Restore() error {
	if m == nil {
		return nil
	}
	m.once.Do(func() {
		if err := unix.IoctlSetTermios(m.fd, ioctlWriteTermios, &m.saved); err != nil {
			m.err = fmt.Errorf("restore terminal settings: %w", err)
		}
	})
	return m.err
}

// Keyboard reads single bytes from a file descriptor.
type Keyboard struct {
	fd  int
	buf [1]byte
}

// NewKeyboard returns a keyboard reading from f. f does not have to be a
// terminal; pipes work too.
func NewKeyboard(f *os.File) *Keyboard {
	return &Keyboard{fd: int(f.Fd())}
}

// Poll waits up to timeout for input to become available. An interrupted
// wait counts as no input.
func (k *Keyboard) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(k.fd), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("poll input: %w", err)
	}
	return n > 0, nil
}

// ReadByte blocks until one byte is read. It returns io.EOF at end of
// stream.
func (k *Keyboard) ReadByte() (byte, error) {
	for {
		n, err := unix.Read(k.fd, k.buf[:])
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return 0, fmt.Errorf("read input: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return k.buf[0], nil
	}
}
