package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell size in pixels when a frame is rasterized to an image.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// DefaultBackground is the image background used by SaveImage.
var DefaultBackground = color.RGBA{12, 12, 12, 255}

// ToImage rasterizes the glyph grid with a 7x13 bitmap font. Each cell
// becomes a GlyphWidth x GlyphHeight block filled with bg and the glyph
// drawn in its color.
func (fb *Framebuffer) ToImage(bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width*GlyphWidth, fb.Height*GlyphHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Face: face}

	var glyph [1]byte
	for y := range fb.Height {
		for x := range fb.Width {
			c := fb.Cells[x+y*fb.Width]
			if c.Glyph == Blank {
				continue
			}
			d.Src = image.NewUniform(c.Color.RGBA())
			d.Dot = fixed.P(x*GlyphWidth, y*GlyphHeight+face.Ascent)
			glyph[0] = c.Glyph
			d.DrawBytes(glyph[:])
		}
	}
	return img
}

// SaveImage writes the frame to path as PNG or WebP, chosen by the file
// extension. scale enlarges every pixel to a scale x scale block.
func (fb *Framebuffer) SaveImage(path string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid image scale %d", scale)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("unsupported image format %q (want .png or .webp)", ext)
	}

	var img image.Image = fb.ToImage(DefaultBackground)
	if scale > 1 {
		b := img.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", ext[1:], err)
	}
	return f.Close()
}
