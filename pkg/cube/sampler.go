// Package cube samples the six faces of an axis-aligned cube as a point cloud
// and feeds the samples through a rotation into a rasterizer.
package cube

import (
	"iter"
	"math"

	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

// Default cube dimensions.
const (
	DefaultHalfWidth = 10.0
	DefaultStep      = 0.2
)

// sweepEpsilon absorbs the rounding error of 2w/step so that exact ratios
// such as 20/0.2 do not gain an extra row.
const sweepEpsilon = 1e-9

// Face is one side of the cube: the coordinate held fixed, and how it is
// drawn.
type Face struct {
	Name  string
	Glyph byte
	Color render.ColorTag

	point func(v, h, w float64) math3d.Vec3
}

// Point returns the cube-local point at (v, h) on the face of a cube with
// half width w.
func (f Face) Point(v, h, w float64) math3d.Vec3 {
	return f.point(v, h, w)
}

// Faces lists the six faces in the order they are sampled for every (v, h).
var Faces = [6]Face{
	{"front", '@', render.Red, func(v, h, w float64) math3d.Vec3 { return math3d.V3(v, h, w) }},
	{"back", '.', render.Blue, func(v, h, w float64) math3d.Vec3 { return math3d.V3(v, h, -w) }},
	{"right", '$', render.Green, func(v, h, w float64) math3d.Vec3 { return math3d.V3(w, v, h) }},
	{"left", '~', render.Yellow, func(v, h, w float64) math3d.Vec3 { return math3d.V3(-w, v, h) }},
	{"bottom", '#', render.Magenta, func(v, h, w float64) math3d.Vec3 { return math3d.V3(v, w, h) }},
	{"top", ';', render.Cyan, func(v, h, w float64) math3d.Vec3 { return math3d.V3(v, -w, h) }},
}

// Sample is one surface point with the glyph and color of its face.
type Sample struct {
	Point math3d.Vec3
	Glyph byte
	Color render.ColorTag
}

// Cube is a cube centered on the origin, sampled on a regular grid.
type Cube struct {
	HalfWidth float64
	Step      float64
}

// New returns a cube with the default half width and sampling step.
func New() Cube {
	return Cube{HalfWidth: DefaultHalfWidth, Step: DefaultStep}
}

// Steps returns how many values each face parameter takes in
// [-HalfWidth, HalfWidth). It is 0 for a degenerate cube.
func (c Cube) Steps() int {
	if !(c.HalfWidth > 0) || !(c.Step > 0) {
		return 0
	}
	n := math.Ceil(2*c.HalfWidth/c.Step - sweepEpsilon)
	if n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// SamplesPerFace returns Steps() squared.
func (c Cube) SamplesPerFace() int {
	n := c.Steps()
	return n * n
}

// coord returns the i-th parameter value of the sweep.
func (c Cube) coord(i int) float64 {
	return -c.HalfWidth + float64(i)*c.Step
}

// Samples yields every sample of the cube. For each (v, h) pair all six
// faces are produced in [Faces] order.
func (c Cube) Samples() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		n := c.Steps()
		for vi := range n {
			v := c.coord(vi)
			for hi := range n {
				h := c.coord(hi)
				for i := range Faces {
					f := &Faces[i]
					if !yield(Sample{f.point(v, h, c.HalfWidth), f.Glyph, f.Color}) {
						return
					}
				}
			}
		}
	}
}

// FaceSamples yields the samples of a single face.
func (c Cube) FaceSamples(f Face) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		n := c.Steps()
		for vi := range n {
			v := c.coord(vi)
			for hi := range n {
				if !yield(Sample{f.point(v, c.coord(hi), c.HalfWidth), f.Glyph, f.Color}) {
					return
				}
			}
		}
	}
}

// Draw rotates every sample with rot and plots it.
func (c Cube) Draw(r *render.Rasterizer, rot math3d.Rotor) {
	for s := range c.Samples() {
		r.Plot(rot.Apply(s.Point), s.Glyph, s.Color)
	}
}

// Render clears the rasterizer's framebuffer and draws the cube at the
// given orientation.
func (c Cube) Render(r *render.Rasterizer, e math3d.Euler) {
	r.Clear()
	c.Draw(r, e.Rotor())
}
