package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/cube/pkg/anim"
	"github.com/taigrr/cube/pkg/config"
	"github.com/taigrr/cube/pkg/cube"
	"github.com/taigrr/cube/pkg/math3d"
	"github.com/taigrr/cube/pkg/models"
	"github.com/taigrr/cube/pkg/render"
	"github.com/taigrr/cube/pkg/tty"
)

type animateFlags struct {
	control bool
	smooth  bool
	frames  int
}

// newScene builds the framebuffer, rasterizer and cube described by cfg.
func newScene(cfg config.Config) (*render.Rasterizer, cube.Cube) {
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	cam := &render.Camera{Distance: cfg.Distance, K1: cfg.K1}
	return render.NewRasterizer(cam, fb), cube.Cube{HalfWidth: cfg.HalfWidth, Step: cfg.Step}
}

// animOptions maps the config and the animate flags onto loop options.
// --smooth overrides the config only when smoothSet.
func animOptions(cfg config.Config, af *animateFlags, smoothSet bool) anim.Options {
	opts := anim.Options{
		Mode:        anim.ModeAuto,
		FrameDelay:  cfg.FrameDelay(),
		PollTimeout: cfg.PollTimeout(),
		Smooth:      cfg.Smooth,
		MaxFrames:   af.frames,
	}
	if smoothSet {
		opts.Smooth = af.smooth
	}
	if af.control {
		opts.Mode = anim.ModeControl
	}
	return opts
}

func runAnimate(cmd *cobra.Command, flags *rootFlags, af *animateFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	// Never log to the terminal the frames are drawn on.
	logger, closeLog, err := setupLogging(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	if w, h, err := tty.Size(os.Stdout); err == nil && (w < cfg.Width || h <= cfg.Height) {
		logger.Warn("terminal smaller than frame",
			"columns", w, "rows", h, "width", cfg.Width, "height", cfg.Height)
	}

	opts := animOptions(cfg, af, cmd.Flags().Changed("smooth"))

	var in anim.Input
	if af.control {
		raw, err := tty.EnableRawInput(os.Stdin)
		if err != nil {
			return fmt.Errorf("control mode: %w", err)
		}
		defer func() {
			if err := raw.Restore(); err != nil {
				logger.Error("restore terminal", "err", err)
			}
		}()
		in = tty.NewKeyboard(os.Stdin)
	}

	display := tty.NewDisplay(os.Stdout)
	if err := display.Clear(); err != nil {
		return err
	}
	defer func() {
		if err := display.Close(); err != nil {
			logger.Error("close display", "err", err)
		}
	}()

	r, c := newScene(cfg)
	return anim.New(c, r, display, in, opts).Run(cmd.Context())
}

// angleFlags are the fixed angles of the single-frame commands.
type angleFlags struct {
	a, b, c float64
}

func (f *angleFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.a, "a", 0, "rotation about X in radians")
	cmd.Flags().Float64Var(&f.b, "b", 0, "rotation about Y in radians")
	cmd.Flags().Float64Var(&f.c, "c", 0, "rotation about Z in radians")
}

func (f *angleFlags) euler() math3d.Euler {
	return math3d.Euler{A: f.a, B: f.b, C: f.c}
}

// renderStill loads the config and draws one frame at the given angles.
func renderStill(cmd *cobra.Command, flags *rootFlags, angles *angleFlags) (*render.Framebuffer, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer closeLog()

	r, c := newScene(cfg)
	c.Render(r, angles.euler())
	logger.Debug("rendered frame",
		"plotted", r.Stats.Plotted, "occluded", r.Stats.Occluded, "clipped", r.Stats.Clipped)
	return r.Framebuffer(), nil
}

func newPrintCmd(flags *rootFlags) *cobra.Command {
	var angles angleFlags
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a single frame and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fb, err := renderStill(cmd, flags, &angles)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fb.Render())
			return err
		},
	}
	angles.register(cmd)
	return cmd
}

func newSnapshotCmd(flags *rootFlags) *cobra.Command {
	var (
		angles angleFlags
		scale  int
	)
	cmd := &cobra.Command{
		Use:   "snapshot OUT.png|OUT.webp",
		Short: "Render a single frame to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := renderStill(cmd, flags, &angles)
			if err != nil {
				return err
			}
			if err := fb.SaveImage(args[0], scale); err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return err
		},
	}
	angles.register(cmd)
	cmd.Flags().IntVar(&scale, "scale", 2, "pixel scale factor")
	return cmd
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var angles angleFlags
	cmd := &cobra.Command{
		Use:   "export OUT.glb",
		Short: "Write the cube as a binary glTF mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			mesh := models.CubeMesh(cube.Cube{HalfWidth: cfg.HalfWidth, Step: cfg.Step})
			mesh.Transform(angles.euler().Matrix())
			if err := models.SaveGLB(mesh, args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d vertices, %d triangles)\n",
				args[0], mesh.VertexCount(), mesh.TriangleCount())
			return err
		},
	}
	angles.register(cmd)
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.glb",
		Short: "Summarize the triangle mesh in a binary glTF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := models.LoadGLB(args[0])
			if err != nil {
				return err
			}

			colors := map[render.ColorTag]int{}
			for _, v := range mesh.Vertices {
				colors[v.Color]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", mesh.Name)
			fmt.Fprintf(out, "  vertices:  %d\n", mesh.VertexCount())
			fmt.Fprintf(out, "  triangles: %d\n", mesh.TriangleCount())
			fmt.Fprintf(out, "  bounds:    %v .. %v\n", mesh.BoundsMin, mesh.BoundsMax)
			fmt.Fprintf(out, "  center:    %v\n", mesh.Center())
			fmt.Fprintf(out, "  size:      %v\n", mesh.Size())
			for tag := render.NoColor; tag <= render.Cyan; tag++ {
				if n := colors[tag]; n > 0 {
					fmt.Fprintf(out, "  %-8s   %d vertices\n", tag.String()+":", n)
				}
			}
			return nil
		},
	}
}
