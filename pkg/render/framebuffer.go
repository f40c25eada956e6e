// Package render turns camera-space points into a grid of colored glyphs.
package render

import (
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Blank is the glyph of a cell nothing was plotted into.
const Blank = ' '

// Cell is one character position of the screen grid.
type Cell struct {
	Depth float64 // inverse depth of the nearest point so far; 0 means empty
	Glyph byte
	Color ColorTag
}

var blankCell = Cell{Glyph: Blank}

// Framebuffer owns every cell of a frame in a single row-major slice.
type Framebuffer struct {
	Width  int
	Height int
	Cells  []Cell

	out []byte
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  max(width, 0),
		Height: max(height, 0),
	}
	fb.Cells = make([]Cell, fb.Width*fb.Height)
	fb.Reset()
	return fb
}

// Reset clears every cell to the blank background. Call it once at the start
// of every frame.
func (fb *Framebuffer) Reset() {
	n := len(fb.Cells)
	if n == 0 {
		return
	}
	// Use copy-doubling for faster clearing
	fb.Cells[0] = blankCell
	for i := 1; i < n; i *= 2 {
		copy(fb.Cells[i:], fb.Cells[:i])
	}
}

// Index returns the flat index of (x, y) and whether it lies on the grid.
func (fb *Framebuffer) Index(x, y int) (int, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, false
	}
	return x + y*fb.Width, true
}

// At returns the cell at (x, y).
// Returns a blank cell if out of bounds.
func (fb *Framebuffer) At(x, y int) Cell {
	idx, ok := fb.Index(x, y)
	if !ok {
		return blankCell
	}
	return fb.Cells[idx]
}

// AppendFrame appends the terminal encoding of the frame to dst. Every row
// starts with a newline; colored cells are wrapped in their SGR sequence and
// a style reset.
func (fb *Framebuffer) AppendFrame(dst []byte) []byte {
	for k, c := range fb.Cells {
		if k%fb.Width == 0 {
			dst = append(dst, '\n')
		}
		if c.Glyph == Blank {
			dst = append(dst, Blank)
			continue
		}
		dst = append(dst, c.Color.SGR()...)
		dst = append(dst, c.Glyph)
		if c.Color != NoColor {
			dst = append(dst, ansi.ResetStyle...)
		}
	}
	return dst
}

// WriteTo writes the encoded frame to w in a single Write call.
func (fb *Framebuffer) WriteTo(w io.Writer) (int64, error) {
	fb.out = fb.AppendFrame(fb.out[:0])
	n, err := w.Write(fb.out)
	return int64(n), err
}

// String returns the glyph grid without any escape sequences, one line per
// row.
func (fb *Framebuffer) String() string {
	buf := make([]byte, 0, (fb.Width+1)*fb.Height)
	for y := range fb.Height {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for _, c := range fb.Cells[y*fb.Width : (y+1)*fb.Width] {
			buf = append(buf, c.Glyph)
		}
	}
	return string(buf)
}
