// Package config holds the tunable constants of the renderer and loads
// overrides from a JSON file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the screen, camera, cube and timing settings.
type Config struct {
	// Screen grid
	Width  int `json:"width"`
	Height int `json:"height"`

	// Camera
	K1       float64 `json:"k1"`
	Distance float64 `json:"distance"`

	// Cube sampling
	HalfWidth float64 `json:"half_width"`
	Step      float64 `json:"step"`

	// Loop timing
	FrameDelayMS  int  `json:"frame_delay_ms"`
	PollTimeoutMS int  `json:"poll_timeout_ms"`
	Smooth        bool `json:"smooth"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:         80,
		Height:        40,
		K1:            40,
		Distance:      50,
		HalfWidth:     10,
		Step:          0.2,
		FrameDelayMS:  16,
		PollTimeoutMS: 10,
		LogLevel:      "info",
	}
}

// Load reads a JSON config file on top of the defaults. Fields missing from
// the file keep their default values; unknown fields are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every size, distance and delay is usable.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Width > 0, "width must be positive, got %d", c.Width)
	check(c.Height > 0, "height must be positive, got %d", c.Height)
	check(finite(c.K1) && c.K1 > 0, "k1 must be positive, got %v", c.K1)
	check(finite(c.Distance), "distance must be finite, got %v", c.Distance)
	check(finite(c.HalfWidth) && c.HalfWidth > 0, "half_width must be positive, got %v", c.HalfWidth)
	check(finite(c.Step) && c.Step > 0, "step must be positive, got %v", c.Step)
	check(c.Step <= 2*c.HalfWidth, "step %v is larger than the cube", c.Step)
	check(c.FrameDelayMS > 0, "frame_delay_ms must be positive, got %d", c.FrameDelayMS)
	check(c.PollTimeoutMS > 0, "poll_timeout_ms must be positive, got %d", c.PollTimeoutMS)

	return errors.Join(errs...)
}

// FrameDelay returns the auto-mode wait between frames.
func (c Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMS) * time.Millisecond
}

// PollTimeout returns the control-mode input wait per frame.
func (c Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMS) * time.Millisecond
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
