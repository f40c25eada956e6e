package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/cube/pkg/math3d"
)

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(10, 4)
	fb.Cells[0] = Cell{Depth: 1, Glyph: '@', Color: Red}

	img := fb.ToImage(DefaultBackground)
	if b := img.Bounds(); b.Dx() != 10*GlyphWidth || b.Dy() != 4*GlyphHeight {
		t.Fatalf("image size = %v", b)
	}

	// An empty cell is pure background.
	if got := img.RGBAAt(5*GlyphWidth+3, 2*GlyphHeight+6); got != DefaultBackground {
		t.Errorf("blank cell pixel = %v, want background", got)
	}

	// The '@' cell has at least one pixel in the glyph color.
	found := false
	for y := range GlyphHeight {
		for x := range GlyphWidth {
			if img.RGBAAt(x, y) == Red.RGBA() {
				found = true
			}
		}
	}
	if !found {
		t.Error("glyph was not drawn in its color")
	}
}

func TestSaveImage(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	r := NewRasterizer(NewCamera(), fb)
	r.Plot(math3d.V3(0, 0, 0), '$', Green)
	dir := t.TempDir()

	t.Run("png scaled", func(t *testing.T) {
		path := filepath.Join(dir, "frame.png")
		if err := fb.SaveImage(path, 2); err != nil {
			t.Fatalf("SaveImage: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		cfg, err := png.DecodeConfig(f)
		if err != nil {
			t.Fatalf("DecodeConfig: %v", err)
		}
		if cfg.Width != 8*GlyphWidth*2 || cfg.Height != 4*GlyphHeight*2 {
			t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("webp", func(t *testing.T) {
		path := filepath.Join(dir, "frame.webp")
		if err := fb.SaveImage(path, 1); err != nil {
			t.Fatalf("SaveImage: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Error("empty webp file")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if err := fb.SaveImage(filepath.Join(dir, "frame.gif"), 1); err == nil {
			t.Error("expected an error for .gif")
		}
	})

	t.Run("bad scale", func(t *testing.T) {
		if err := fb.SaveImage(filepath.Join(dir, "frame.png"), 0); err == nil {
			t.Error("expected an error for scale 0")
		}
	})
}
