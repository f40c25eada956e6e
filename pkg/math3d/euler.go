package math3d

import "math"

// Euler is an orientation given by three accumulated angles in radians:
// A about X, B about Y and C about Z. Angles are never wrapped; only their
// sines and cosines are ever used.
type Euler struct {
	A, B, C float64
}

// Add returns the component-wise sum of two angle triples.
func (e Euler) Add(o Euler) Euler {
	return Euler{e.A + o.A, e.B + o.B, e.C + o.C}
}

// Scale multiplies every angle by s.
func (e Euler) Scale(s float64) Euler {
	return Euler{e.A * s, e.B * s, e.C * s}
}

// Rotor precomputes the trigonometry of e so it can be applied to many
// points per frame.
func (e Euler) Rotor() Rotor {
	sa, ca := math.Sincos(e.A)
	sb, cb := math.Sincos(e.B)
	sc, cc := math.Sincos(e.C)
	return Rotor{sa: sa, ca: ca, sb: sb, cb: cb, sc: sc, cc: cc}
}

// Matrix returns e as a composition of axis rotations. It describes the
// same transform as [Rotor.Apply] and is meant for whole-mesh work where a
// matrix is more convenient than the closed form.
func (e Euler) Matrix() Mat4 {
	return RotateZ(-e.C).Mul(RotateY(-e.B)).Mul(RotateX(-e.A))
}

// Rotor applies a fixed Euler rotation to cube-local points.
type Rotor struct {
	sa, ca float64
	sb, cb float64
	sc, cc float64
}

// Apply maps the local point p=(i,j,k) to camera space.
func (r Rotor) Apply(p Vec3) Vec3 {
	i, j, k := p.X, p.Y, p.Z
	sa, ca, sb, cb, sc, cc := r.sa, r.ca, r.sb, r.cb, r.sc, r.cc

	return Vec3{
		X: j*sa*sb*cc - k*ca*sb*cc + j*ca*sc + k*sa*sc + i*cb*cc,
		Y: j*ca*cc + k*sa*cc - j*sa*sb*sc + k*ca*sb*sc - i*cb*sc,
		Z: k*ca*cb - j*sa*cb + i*sb,
	}
}

// Rotate applies the rotation e to p in one shot.
func Rotate(p Vec3, e Euler) Vec3 {
	return e.Rotor().Apply(p)
}
