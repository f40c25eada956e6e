package render

import (
	"github.com/taigrr/cube/pkg/math3d"
)

// Rasterizer plots projected points into a framebuffer with a depth test.
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer
	Stats  PlotStats // Statistics for debugging/benchmarking
}

// PlotStats counts what happened to the points of a frame.
type PlotStats struct {
	Plotted  int // points that won their cell
	Occluded int // points that lost the depth test
	Clipped  int // points off the grid or on the camera plane
}

// Total returns the number of points offered to the rasterizer.
func (s PlotStats) Total() int {
	return s.Plotted + s.Occluded + s.Clipped
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	if camera == nil {
		camera = NewCamera()
	}
	return &Rasterizer{
		camera: camera,
		fb:     fb,
	}
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Camera returns the projecting camera.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Clear resets the framebuffer and the statistics (call before each frame).
func (r *Rasterizer) Clear() {
	r.fb.Reset()
	r.ResetStats()
}

// ResetStats resets the plot statistics.
func (r *Rasterizer) ResetStats() {
	r.Stats = PlotStats{}
}

// Plot projects p and stores glyph and color in its cell when p is nearer
// than whatever the cell already holds. It reports whether the cell changed.
// Points that do not project onto the grid are dropped silently.
func (r *Rasterizer) Plot(p math3d.Vec3, glyph byte, color ColorTag) bool {
	x, y, ooz, ok := r.camera.Project(p, r.fb.Width, r.fb.Height)
	if !ok {
		r.Stats.Clipped++
		return false
	}

	cell := &r.fb.Cells[x+y*r.fb.Width]
	if ooz <= cell.Depth {
		r.Stats.Occluded++
		return false
	}

	cell.Depth = ooz
	cell.Glyph = glyph
	cell.Color = color
	r.Stats.Plotted++
	return true
}
