// Package anim drives the render loop: it owns the rotation state, renders
// a frame, presents it and then either advances the rotation (auto mode) or
// reacts to arrow keys (control mode).
package anim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/taigrr/cube/pkg/cube"
	"github.com/taigrr/cube/pkg/input"
	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

// Mode selects how the rotation changes between frames.
type Mode int

const (
	// ModeAuto spins the cube by AutoStep every frame.
	ModeAuto Mode = iota
	// ModeControl turns the cube only in response to arrow keys.
	ModeControl
)

func (m Mode) String() string {
	if m == ModeControl {
		return "control"
	}
	return "auto"
}

// Default loop timings.
const (
	DefaultFrameDelay  = 16 * time.Millisecond
	DefaultPollTimeout = 10 * time.Millisecond
	DefaultStatsEvery  = 120
)

// Options configures an Animator. Zero durations fall back to the defaults.
type Options struct {
	Mode        Mode
	FrameDelay  time.Duration // wait after every auto-mode frame
	PollTimeout time.Duration // input wait per control-mode frame
	Smooth      bool          // ease displayed angles in control mode
	MaxFrames   int           // stop after this many frames; 0 runs until quit
	StatsEvery  int           // frames between debug statistics
}

// Input is the keyboard the control mode reads from.
type Input interface {
	// Poll waits up to timeout and reports whether a byte can be read.
	Poll(timeout time.Duration) (bool, error)
	// ReadByte blocks for the next byte and returns io.EOF at end of stream.
	ReadByte() (byte, error)
}

// Screen shows finished frames.
type Screen interface {
	Present(fb *render.Framebuffer) error
}

// Pacer waits d between auto-mode frames. It should return early when ctx is
// done.
type Pacer func(ctx context.Context, d time.Duration) error

// Sleep is the default Pacer.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
	return nil
}

// ErrNoInput is returned by Run when control mode has no Input.
var ErrNoInput = errors.New("anim: control mode requires an input")

// Animator runs the frame loop. It is not safe for concurrent use.
type Animator struct {
	opts   Options
	cube   cube.Cube
	raster *render.Rasterizer
	screen Screen
	in     Input
	pace   Pacer

	state    RotationState
	smoother *Smoother
	decoder  input.Decoder
	frames   int

	now        func() time.Time
	lastView   time.Time
	statsStart time.Time
}

// New creates an animator that draws c through r and presents frames on
// screen. in may be nil in auto mode.
func New(c cube.Cube, r *render.Rasterizer, screen Screen, in Input, opts Options) *Animator {
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = DefaultFrameDelay
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.StatsEvery <= 0 {
		opts.StatsEvery = DefaultStatsEvery
	}

	a := &Animator{
		opts:   opts,
		cube:   c,
		raster: r,
		screen: screen,
		in:     in,
		pace:   Sleep,
		now:    time.Now,
	}
	if opts.Smooth && opts.Mode == ModeControl {
		a.smoother = NewSmoother(a.state.Angles)
	}
	return a
}

// SetPacer replaces the auto-mode wait. nil restores Sleep.
func (a *Animator) SetPacer(p Pacer) {
	if p == nil {
		p = Sleep
	}
	a.pace = p
}

// SetAngles moves the cube to e without easing.
func (a *Animator) SetAngles(e math3d.Euler) {
	a.state.Angles = e
	if a.smoother != nil {
		a.smoother = NewSmoother(e)
		a.lastView = time.Time{}
	}
}

// Angles returns the exact rotation state.
func (a *Animator) Angles() math3d.Euler {
	return a.state.Angles
}

// viewAngles returns the angles the next frame is drawn at. The smoother is
// stepped by the time measured since the previous frame; the first frame
// assumes one poll timeout.
func (a *Animator) viewAngles() math3d.Euler {
	if a.smoother == nil {
		return a.state.Angles
	}
	now := a.now()
	dt := a.opts.PollTimeout
	if !a.lastView.IsZero() {
		if elapsed := now.Sub(a.lastView); elapsed > 0 {
			dt = elapsed
		}
	}
	a.lastView = now
	return a.smoother.Update(a.state.Angles, dt)
}

// RenderFrame draws the cube at the current angles and presents it.
func (a *Animator) RenderFrame() error {
	a.cube.Render(a.raster, a.viewAngles())
	if err := a.screen.Present(a.raster.Framebuffer()); err != nil {
		return err
	}
	a.frames++
	a.logStats()
	return nil
}

// Step runs one iteration of the loop: render and present a frame, then
// advance or read input according to the mode. done is true when the user
// quit or the input ended.
func (a *Animator) Step(ctx context.Context) (done bool, err error) {
	if err := a.RenderFrame(); err != nil {
		return false, err
	}

	if a.opts.Mode == ModeAuto {
		a.state.Advance(AutoStep)
		if err := a.pace(ctx, a.opts.FrameDelay); err != nil {
			return false, fmt.Errorf("pace frame: %w", err)
		}
		return false, nil
	}

	return a.handleInput()
}

// handleInput polls once and, when a byte is waiting, reads one key. Every
// continuation byte of an escape sequence gets its own bounded poll; when it
// does not arrive in time the partial sequence is dropped, so a lone ESC never
// stalls the loop.
func (a *Animator) handleInput() (done bool, err error) {
	for {
		ready, err := a.in.Poll(a.opts.PollTimeout)
		if err != nil {
			return false, fmt.Errorf("poll input: %w", err)
		}
		if !ready {
			if a.decoder.Pending() {
				Logger().Debug("incomplete escape sequence dropped")
				a.decoder.Reset()
			}
			return false, nil
		}

		b, err := a.in.ReadByte()
		if errors.Is(err, io.EOF) {
			Logger().Info("input closed")
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("read input: %w", err)
		}

		key := a.decoder.Feed(b)
		switch key {
		case input.KeyNone:
		case input.KeyQuit:
			Logger().Info("quit requested")
			return true, nil
		default:
			a.state.Apply(key)
			Logger().Debug("key", "key", key, "a", a.state.Angles.A, "b", a.state.Angles.B)
		}

		if !a.decoder.Pending() {
			return false, nil
		}
	}
}

// Run loops until the user quits, the input ends, MaxFrames is reached or
// ctx is cancelled. Cancellation is observed between frames and is not an
// error.
func (a *Animator) Run(ctx context.Context) error {
	if a.opts.Mode == ModeControl && a.in == nil {
		return ErrNoInput
	}

	log := Logger()
	cam := a.raster.Camera()
	log.Info("animation started",
		"mode", a.opts.Mode,
		"width", a.raster.Framebuffer().Width,
		"height", a.raster.Framebuffer().Height,
		"k1", cam.K1,
		"distance", cam.Distance,
		"samples", len(cube.Faces)*a.cube.SamplesPerFace(),
		"smooth", a.smoother != nil)
	a.statsStart = time.Now()

	for {
		if err := ctx.Err(); err != nil {
			log.Info("animation cancelled", "frames", a.frames)
			return nil
		}

		done, err := a.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			log.Info("animation finished", "frames", a.frames)
			return nil
		}
		if a.opts.MaxFrames > 0 && a.frames >= a.opts.MaxFrames {
			log.Info("frame limit reached", "frames", a.frames)
			return nil
		}
	}
}

func (a *Animator) logStats() {
	if a.frames%a.opts.StatsEvery != 0 {
		return
	}
	log := Logger()

	var fps float64
	if !a.statsStart.IsZero() {
		if elapsed := time.Since(a.statsStart); elapsed > 0 {
			fps = float64(a.opts.StatsEvery) / elapsed.Seconds()
		}
	}
	a.statsStart = time.Now()

	s := a.raster.Stats
	log.Debug("frame stats",
		"frame", a.frames,
		"fps", fps,
		"plotted", s.Plotted,
		"occluded", s.Occluded,
		"clipped", s.Clipped)
}
