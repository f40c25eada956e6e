package tty

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"

	"github.com/taigrr/cube/pkg/render"
)

// Display redraws whole frames on a terminal.
type Display struct {
	w   io.Writer
	buf []byte
}

// NewDisplay returns a display writing to w.
func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Clear hides the cursor, erases the screen and homes the cursor.
func (d *Display) Clear() error {
	return d.write(ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorHomePosition)
}

// Present homes the cursor and draws fb over the previous frame with a
// single write.
func (d *Display) Present(fb *render.Framebuffer) error {
	d.buf = append(d.buf[:0], ansi.CursorHomePosition...)
	d.buf = fb.AppendFrame(d.buf)
	if _, err := d.w.Write(d.buf); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Close resets the text style, shows the cursor again and moves to a fresh
// line below the last frame.
func (d *Display) Close() error {
	return d.write(ansi.ResetStyle + ansi.ShowCursor + "\n")
}

func (d *Display) write(s string) error {
	if _, err := io.WriteString(d.w, s); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}
