package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw copies the glyph grid onto scr, implementing [uv.Drawable]. Cell (0,0)
// of the frame lands on area.Min; anything outside area is left alone.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		y := row - area.Min.Y
		if y >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			c := fb.Cells[x+y*fb.Width]
			if c.Glyph == Blank {
				scr.SetCell(col, row, &uv.EmptyCell)
				continue
			}

			scr.SetCell(col, row, &uv.Cell{
				Content: string(c.Glyph),
				Width:   1,
				Style:   c.Color.Style(),
			})
		}
	}
}

// Render draws the frame into an offscreen ultraviolet buffer and returns the
// styled result, one line per row.
func (fb *Framebuffer) Render() string {
	buf := uv.NewScreenBuffer(fb.Width, fb.Height)
	fb.Draw(buf, buf.Bounds())
	return buf.Render()
}
