package render

import (
	"github.com/taigrr/cube/pkg/math3d"
)

// Default projection parameters.
const (
	DefaultDistance = 50.0
	DefaultK1       = 40.0
)

// Camera is a fixed pinhole camera looking down +Z from Distance units in
// front of the origin.
type Camera struct {
	Distance float64 // offset added to camera-space z before projecting
	K1       float64 // projection scale
}

// NewCamera creates a camera with the default distance and scale.
func NewCamera() *Camera {
	return &Camera{
		Distance: DefaultDistance,
		K1:       DefaultK1,
	}
}

// Project maps a camera-space point to a cell of a width x height grid. The x
// axis is doubled because terminal cells are about twice as tall as wide.
// ok is false when the point lands outside the grid or sits exactly on the
// camera plane.
func (c *Camera) Project(p math3d.Vec3, width, height int) (x, y int, ooz float64, ok bool) {
	z := p.Z + c.Distance
	if z == 0 {
		return 0, 0, 0, false
	}
	ooz = 1 / z

	x = int(float64(width/2) + c.K1*ooz*p.X*2)
	y = int(float64(height/2) + c.K1*ooz*p.Y)

	if x < 0 || x >= width || y < 0 || y >= height {
		return x, y, ooz, false
	}
	return x, y, ooz, true
}
