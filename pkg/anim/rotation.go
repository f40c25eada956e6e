package anim

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/cube/pkg/input"
	"github.com/taigrr/cube/pkg/math3d"
)

// AutoStep is how far each angle advances per frame in auto mode.
var AutoStep = math3d.Euler{A: 0.05, B: 0.05, C: 0.01}

// NudgeStep is how far an arrow key turns the cube.
const NudgeStep = 0.1

// RotationState holds the accumulated rotation of the cube.
type RotationState struct {
	Angles math3d.Euler
}

// Advance adds step to the angles.
func (r *RotationState) Advance(step math3d.Euler) {
	r.Angles.A += step.A
	r.Angles.B += step.B
	r.Angles.C += step.C
}

// Apply turns the cube for an arrow key: up and down about X, right and left
// about Y. It reports whether k changed the angles.
func (r *RotationState) Apply(k input.Key) bool {
	switch k {
	case input.KeyUp:
		r.Angles.A -= NudgeStep
	case input.KeyDown:
		r.Angles.A += NudgeStep
	case input.KeyRight:
		r.Angles.B += NudgeStep
	case input.KeyLeft:
		r.Angles.B -= NudgeStep
	default:
		return false
	}
	return true
}

// Spring parameters of the displayed angles: frequency 8 settles a nudge in
// about a quarter second, damping 1 never overshoots.
const (
	smoothFrequency = 8.0
	smoothDamping   = 1.0
)

// RotationAxis eases a displayed angle toward a target with a critically
// damped spring.
type RotationAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
	step     time.Duration
}

// NewRotationAxis creates an axis resting at pos.
func NewRotationAxis(pos float64) RotationAxis {
	return RotationAxis{Position: pos}
}

// Update moves the axis toward target by dt of simulated time. The spring is
// rebuilt only when dt changes.
func (a *RotationAxis) Update(target float64, dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt != a.step {
		a.spring = harmonica.NewSpring(dt.Seconds(), smoothFrequency, smoothDamping)
		a.step = dt
	}
	a.Position, a.Velocity = a.spring.Update(a.Position, a.Velocity, target)
}

// Smoother eases all three displayed angles toward the exact rotation.
type Smoother struct {
	A, B, C RotationAxis
}

// NewSmoother creates a smoother at rest on start.
func NewSmoother(start math3d.Euler) *Smoother {
	return &Smoother{
		A: NewRotationAxis(start.A),
		B: NewRotationAxis(start.B),
		C: NewRotationAxis(start.C),
	}
}

// Update steps every axis toward target by dt and returns the angles to
// display.
func (s *Smoother) Update(target math3d.Euler, dt time.Duration) math3d.Euler {
	s.A.Update(target.A, dt)
	s.B.Update(target.B, dt)
	s.C.Update(target.C, dt)
	return s.Angles()
}

// Angles returns the current displayed angles.
func (s *Smoother) Angles() math3d.Euler {
	return math3d.Euler{A: s.A.Position, B: s.B.Position, C: s.C.Position}
}
