package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// ColorTag names one of the fixed glyph colors. The zero value means the cell
// carries no color.
type ColorTag uint8

const (
	NoColor ColorTag = iota
	Red
	Green
	Blue
	Yellow
	Magenta
	Cyan

	numColors
)

type colorEntry struct {
	name  string
	rgba  color.RGBA
	sgr   string
	style uv.Style
}

var colorTable [numColors]colorEntry

func init() {
	entries := [numColors]struct {
		name string
		fg   ansi.BasicColor
		rgba color.RGBA
	}{
		NoColor: {"none", 0, color.RGBA{204, 204, 204, 255}},
		Red:     {"red", ansi.Red, color.RGBA{205, 49, 49, 255}},
		Green:   {"green", ansi.Green, color.RGBA{13, 188, 121, 255}},
		Blue:    {"blue", ansi.Blue, color.RGBA{36, 114, 200, 255}},
		Yellow:  {"yellow", ansi.Yellow, color.RGBA{229, 229, 16, 255}},
		Magenta: {"magenta", ansi.Magenta, color.RGBA{188, 63, 188, 255}},
		Cyan:    {"cyan", ansi.Cyan, color.RGBA{17, 168, 205, 255}},
	}

	for tag, e := range entries {
		entry := colorEntry{name: e.name, rgba: e.rgba}
		if ColorTag(tag) != NoColor {
			entry.style = uv.Style{Fg: e.fg}
			entry.sgr = entry.style.String()
		}
		colorTable[tag] = entry
	}
}

func (c ColorTag) entry() *colorEntry {
	if c >= numColors {
		return &colorTable[NoColor]
	}
	return &colorTable[c]
}

// SGR returns the escape sequence that selects c as the foreground color.
// It is empty for NoColor.
func (c ColorTag) SGR() string {
	return c.entry().sgr
}

// Style returns c as an ultraviolet cell style.
func (c ColorTag) Style() uv.Style {
	return c.entry().style
}

// RGBA returns the color used when a frame is rasterized to an image.
func (c ColorTag) RGBA() color.RGBA {
	return c.entry().rgba
}

func (c ColorTag) String() string {
	return c.entry().name
}
