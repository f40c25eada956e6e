package anim

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/taigrr/cube/pkg/cube"
	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/render"
)

// fakeInput replays bytes. Poll reports input while bytes remain; once they
// run out it either reports nothing or, with eof set, reports a readable end
// of stream.
type fakeInput struct {
	data  []byte
	eof   bool
	polls int
	err   error
}

func (f *fakeInput) Poll(time.Duration) (bool, error) {
	f.polls++
	if f.err != nil {
		return false, f.err
	}
	return len(f.data) > 0 || f.eof, nil
}

func (f *fakeInput) ReadByte() (byte, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	b := f.data[0]
	f.data = f.data[1:]
	return b, nil
}

// fakeScreen records presented frames.
type fakeScreen struct {
	frames  int
	last    string
	onFrame func(n int)
	err     error
}

func (s *fakeScreen) Present(fb *render.Framebuffer) error {
	if s.err != nil {
		return s.err
	}
	s.frames++
	s.last = fb.String()
	if s.onFrame != nil {
		s.onFrame(s.frames)
	}
	return nil
}

func noWait(context.Context, time.Duration) error { return nil }

func newTestAnimator(screen Screen, in Input, opts Options) *Animator {
	fb := render.NewFramebuffer(80, 40)
	a := New(cube.New(), render.NewRasterizer(render.NewCamera(), fb), screen, in, opts)
	a.SetPacer(noWait)
	return a
}

func TestAutoModeAdvancesAngles(t *testing.T) {
	for _, n := range []int{1, 2, 10, 37} {
		screen := &fakeScreen{}
		a := newTestAnimator(screen, nil, Options{Mode: ModeAuto, MaxFrames: n})

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if screen.frames != n {
			t.Errorf("presented %d frames, want %d", screen.frames, n)
		}

		got := a.Angles()
		want := math3d.Euler{A: 0.05 * float64(n), B: 0.05 * float64(n), C: 0.01 * float64(n)}
		if math.Abs(got.A-want.A) > 1e-9 || math.Abs(got.B-want.B) > 1e-9 || math.Abs(got.C-want.C) > 1e-9 {
			t.Errorf("after %d frames angles = %+v, want %+v", n, got, want)
		}
	}
}

func TestAutoModePacesEveryFrame(t *testing.T) {
	var waits []time.Duration
	a := newTestAnimator(&fakeScreen{}, nil, Options{Mode: ModeAuto, MaxFrames: 3})
	a.SetPacer(func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})

	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(waits) != 3 {
		t.Fatalf("%d waits, want 3", len(waits))
	}
	for _, d := range waits {
		if d != DefaultFrameDelay {
			t.Errorf("wait %v, want %v", d, DefaultFrameDelay)
		}
	}
}

func TestControlModeArrowKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want math3d.Euler
	}{
		{"right", "\x1b[C", math3d.Euler{B: 0.1}},
		{"left", "\x1b[D", math3d.Euler{B: -0.1}},
		{"up", "\x1b[A", math3d.Euler{A: -0.1}},
		{"down", "\x1b[B", math3d.Euler{A: 0.1}},
		{"ignored", "x", math3d.Euler{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := &fakeInput{data: []byte(tc.in)}
			a := newTestAnimator(&fakeScreen{}, in, Options{Mode: ModeControl, MaxFrames: 1})

			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := a.Angles(); got != tc.want {
				t.Errorf("angles = %+v, want exactly %+v", got, tc.want)
			}
			if len(in.data) != 0 {
				t.Errorf("%d bytes left unread", len(in.data))
			}
		})
	}
}

func TestControlModeQuitAfterFrame(t *testing.T) {
	in := &fakeInput{data: []byte("\x1b[Cq\x1b[C")}
	screen := &fakeScreen{}
	a := newTestAnimator(screen, in, Options{Mode: ModeControl})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if screen.frames != 2 {
		t.Errorf("presented %d frames, want 2", screen.frames)
	}
	if got := a.Angles(); got != (math3d.Euler{B: 0.1}) {
		t.Errorf("angles = %+v, want B=0.1 only", got)
	}
}

func TestControlModeNoInputKeepsRendering(t *testing.T) {
	in := &fakeInput{}
	screen := &fakeScreen{}
	a := newTestAnimator(screen, in, Options{Mode: ModeControl, MaxFrames: 5})

	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if screen.frames != 5 || in.polls != 5 {
		t.Errorf("frames %d polls %d, want 5 and 5", screen.frames, in.polls)
	}
	if a.Angles() != (math3d.Euler{}) {
		t.Errorf("angles changed without input: %+v", a.Angles())
	}
}

func TestControlModeEOF(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty stream", ""},
		{"mid sequence", "\x1b["},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := &fakeInput{data: []byte(tc.data), eof: true}
			screen := &fakeScreen{}
			a := newTestAnimator(screen, in, Options{Mode: ModeControl})

			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("Run = %v, want nil at end of input", err)
			}
			if screen.frames != 1 {
				t.Errorf("presented %d frames, want 1", screen.frames)
			}
			if a.Angles() != (math3d.Euler{}) {
				t.Errorf("angles = %+v, want unchanged", a.Angles())
			}
		})
	}
}

func TestControlModeErrors(t *testing.T) {
	pollErr := errors.New("poll failed")
	a := newTestAnimator(&fakeScreen{}, &fakeInput{err: pollErr}, Options{Mode: ModeControl})
	if err := a.Run(context.Background()); !errors.Is(err, pollErr) {
		t.Errorf("Run = %v, want poll error", err)
	}

	a = newTestAnimator(&fakeScreen{}, nil, Options{Mode: ModeControl})
	if err := a.Run(context.Background()); !errors.Is(err, ErrNoInput) {
		t.Errorf("Run without input = %v, want ErrNoInput", err)
	}
}

func TestPresentError(t *testing.T) {
	presentErr := errors.New("display gone")
	a := newTestAnimator(&fakeScreen{err: presentErr}, nil, Options{Mode: ModeAuto})
	if err := a.Run(context.Background()); !errors.Is(err, presentErr) {
		t.Errorf("Run = %v, want present error", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	screen := &fakeScreen{onFrame: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	a := newTestAnimator(screen, nil, Options{Mode: ModeAuto})

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run = %v, want nil on cancel", err)
	}
	if screen.frames != 3 {
		t.Errorf("presented %d frames, want 3", screen.frames)
	}
}

// stepClock returns a clock that advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestSmoothControlMode(t *testing.T) {
	in := &fakeInput{data: []byte("\x1b[C")}
	screen := &fakeScreen{}
	a := newTestAnimator(screen, in, Options{Mode: ModeControl, Smooth: true, MaxFrames: 200})
	a.now = stepClock(10 * time.Millisecond)

	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The state moves by exactly one nudge; only the drawn angles are eased.
	if got := a.Angles(); got != (math3d.Euler{B: 0.1}) {
		t.Errorf("angles = %+v, want B=0.1", got)
	}
	view := a.smoother.Angles()
	if math.Abs(view.B-0.1) > 1e-3 {
		t.Errorf("displayed B = %v, want close to 0.1 after settling", view.B)
	}
}

func TestSmoothFollowsFrameTime(t *testing.T) {
	// The same keys over the same wall time ease equally far at any frame rate.
	displayed := func(frameTime time.Duration, frames int) float64 {
		in := &fakeInput{data: []byte("\x1b[C")}
		a := newTestAnimator(&fakeScreen{}, in, Options{Mode: ModeControl, Smooth: true, MaxFrames: frames})
		a.now = stepClock(frameTime)
		if err := a.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		return a.smoother.Angles().B
	}

	fast := displayed(10*time.Millisecond, 13)
	slow := displayed(40*time.Millisecond, 4)
	if math.Abs(fast-slow) > 1e-9 {
		t.Errorf("displayed B after 120ms: %v at 100 fps, %v at 25 fps", fast, slow)
	}
	if fast <= 0 || fast >= 0.1 {
		t.Errorf("displayed B = %v, want partway to 0.1", fast)
	}
}

// stalledInput delivers one ESC and then never has another byte ready.
// ReadByte blocks until release is closed.
type stalledInput struct {
	sent    bool
	reads   int
	release chan struct{}
}

func (s *stalledInput) Poll(time.Duration) (bool, error) {
	return !s.sent, nil
}

func (s *stalledInput) ReadByte() (byte, error) {
	s.reads++
	if !s.sent {
		s.sent = true
		return 0x1b, nil
	}
	<-s.release
	return 0, io.EOF
}

func TestControlModeLoneEscape(t *testing.T) {
	in := &stalledInput{release: make(chan struct{})}
	defer close(in.release)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	screen := &fakeScreen{onFrame: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	a := newTestAnimator(screen, in, Options{Mode: ModeControl})

	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run = %v, want nil on cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after a lone ESC and cancel")
	}
	if screen.frames != 3 {
		t.Errorf("presented %d frames, want 3", screen.frames)
	}
	if in.reads != 1 {
		t.Errorf("%d reads, want only the ESC", in.reads)
	}
	if a.decoder.Pending() {
		t.Error("decoder still mid-sequence after the continuation timed out")
	}
	if a.Angles() != (math3d.Euler{}) {
		t.Errorf("angles = %+v, want unchanged", a.Angles())
	}
}

func TestSetAngles(t *testing.T) {
	screen := &fakeScreen{}
	a := newTestAnimator(screen, nil, Options{Mode: ModeAuto, MaxFrames: 1})
	e := math3d.Euler{A: 1, B: 2, C: 3}
	a.SetAngles(e)

	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := render.NewFramebuffer(80, 40)
	cube.New().Render(render.NewRasterizer(nil, want), e)
	if screen.last != want.String() {
		t.Error("first frame was not drawn at the angles set")
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := Sleep(ctx, time.Hour); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep ignored cancellation")
	}
}

func TestModeString(t *testing.T) {
	if ModeAuto.String() != "auto" || ModeControl.String() != "control" {
		t.Errorf("mode strings = %q, %q", ModeAuto, ModeControl)
	}
}
