package cube

import (
	"math"
	"testing"

	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

func TestSteps(t *testing.T) {
	tests := []struct {
		name string
		c    Cube
		want int
	}{
		{"default", New(), 100},
		{"unit step", Cube{HalfWidth: 10, Step: 1}, 20},
		{"inexact ratio rounds up", Cube{HalfWidth: 1, Step: 0.3}, 7},
		{"tenth step", Cube{HalfWidth: 5, Step: 0.1}, 100},
		{"zero step", Cube{HalfWidth: 10, Step: 0}, 0},
		{"negative width", Cube{HalfWidth: -1, Step: 0.2}, 0},
		{"NaN step", Cube{HalfWidth: 10, Step: math.NaN()}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Steps(); got != tc.want {
				t.Errorf("Steps() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFaceSampleCount(t *testing.T) {
	c := New()
	for _, f := range Faces {
		n := 0
		for s := range c.FaceSamples(f) {
			if s.Glyph != f.Glyph || s.Color != f.Color {
				t.Fatalf("%s: sample drawn as %q/%v", f.Name, s.Glyph, s.Color)
			}
			n++
		}
		if n != 10000 {
			t.Errorf("%s: %d samples, want 10000", f.Name, n)
		}
	}
}

func TestSamplesFaceOrder(t *testing.T) {
	c := New()

	n := 0
	for s := range c.Samples() {
		f := Faces[n%len(Faces)]
		if s.Glyph != f.Glyph || s.Color != f.Color {
			t.Fatalf("sample %d drawn as %q/%v, want %s", n, s.Glyph, s.Color, f.Name)
		}
		n++
	}
	if n != 6*10000 {
		t.Errorf("%d samples, want 60000", n)
	}
}

func TestFaceTable(t *testing.T) {
	const w = 10
	tests := []struct {
		glyph byte
		color render.ColorTag
		want  math3d.Vec3
	}{
		{'@', render.Red, math3d.V3(1, 2, w)},
		{'.', render.Blue, math3d.V3(1, 2, -w)},
		{'$', render.Green, math3d.V3(w, 1, 2)},
		{'~', render.Yellow, math3d.V3(-w, 1, 2)},
		{'#', render.Magenta, math3d.V3(1, w, 2)},
		{';', render.Cyan, math3d.V3(1, -w, 2)},
	}

	for i, tc := range tests {
		f := Faces[i]
		t.Run(f.Name, func(t *testing.T) {
			if f.Glyph != tc.glyph || f.Color != tc.color {
				t.Errorf("face %d = %q/%v, want %q/%v", i, f.Glyph, f.Color, tc.glyph, tc.color)
			}
			if got := f.Point(1, 2, w); got != tc.want {
				t.Errorf("Point(1, 2) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSweepRange(t *testing.T) {
	c := New()
	lo, hi := math.Inf(1), math.Inf(-1)
	for s := range c.FaceSamples(Faces[0]) {
		lo = min(lo, s.Point.X)
		hi = max(hi, s.Point.X)
	}
	if lo != -10 {
		t.Errorf("first coordinate = %v, want -10", lo)
	}
	if hi >= 10 || hi < 9.79 {
		t.Errorf("last coordinate = %v, want just under 10", hi)
	}
}

func TestSamplesStopEarly(t *testing.T) {
	n := 0
	for range New().Samples() {
		n++
		if n == 7 {
			break
		}
	}
	if n != 7 {
		t.Errorf("iterated %d samples after break", n)
	}
}

func TestRenderFrontFace(t *testing.T) {
	fb := render.NewFramebuffer(80, 40)
	r := render.NewRasterizer(render.NewCamera(), fb)
	New().Render(r, math3d.Euler{})

	// Looking straight at the cube only the near face (k = -w) is visible in
	// the middle of the screen.
	if got := fb.At(40, 20); got.Glyph != '.' || got.Color != render.Blue {
		t.Errorf("center cell = %q/%v, want '.'/blue", got.Glyph, got.Color)
	}
	if got := fb.At(0, 0); got.Glyph != render.Blank {
		t.Errorf("corner cell = %q, want blank", got.Glyph)
	}
	if r.Stats.Total() != 60000 {
		t.Errorf("plotted %d points, want 60000", r.Stats.Total())
	}
	if r.Stats.Plotted == 0 || r.Stats.Occluded == 0 {
		t.Errorf("unexpected stats %+v", r.Stats)
	}
}

func TestRenderDeterministic(t *testing.T) {
	e := math3d.Euler{A: 0.7, B: 1.9, C: 0.3}
	a := render.NewFramebuffer(80, 40)
	b := render.NewFramebuffer(80, 40)
	New().Render(render.NewRasterizer(nil, a), e)
	New().Render(render.NewRasterizer(nil, b), e)

	if a.String() != b.String() {
		t.Error("same angles rendered different frames")
	}
}

func BenchmarkRenderFrame(b *testing.B) {
	fb := render.NewFramebuffer(80, 40)
	r := render.NewRasterizer(render.NewCamera(), fb)
	c := New()
	e := math3d.Euler{A: 0.5, B: 0.25, C: 0.1}

	for b.Loop() {
		c.Render(r, e)
	}
}
