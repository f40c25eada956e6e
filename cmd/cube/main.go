// cube - Spinning ASCII Cube
// Draws a solid, colored cube in your terminal with a z-buffered point
// rasterizer.
//
// Controls (with --control):
//
//	Up/Down     - Tilt about the X axis
//	Left/Right  - Turn about the Y axis
//	q           - Quit
//
// Ctrl+C quits in either mode.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/cube/pkg/anim"
	"github.com/taigrr/cube/pkg/config"
)

var (
	version = "dev"
	commit  = ""
)

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	configPath string
	width      int
	height     int
	logFile    string
	logLevel   string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags   rootFlags
		animate animateFlags
	)

	root := &cobra.Command{
		Use:   "cube",
		Short: "Spin an ASCII cube in the terminal",
		Long: "cube renders a rotating cube with colored ASCII glyphs, resolving " +
			"overlapping faces with a per-cell depth buffer.\n\n" +
			"By default the cube spins on its own. With --control the arrow keys " +
			"turn it and q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnimate(cmd, &flags, &animate)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "JSON config file")
	pf.IntVar(&flags.width, "width", 0, "frame width in columns (default 80)")
	pf.IntVar(&flags.height, "height", 0, "frame height in rows (default 40)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	f := root.Flags()
	f.BoolVar(&animate.control, "control", false, "turn the cube with the arrow keys instead of spinning it")
	f.BoolVar(&animate.smooth, "smooth", false, "ease the cube toward each arrow key step (control mode)")
	f.IntVar(&animate.frames, "frames", 0, "stop after this many frames (0 runs until quit)")

	root.AddCommand(
		newPrintCmd(&flags),
		newSnapshotCmd(&flags),
		newExportCmd(&flags),
		newInspectCmd(),
	)
	return root
}

// loadConfig reads the config file, if any, and applies the flags the user
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = flags.width
	}
	if changed("height") {
		cfg.Height = flags.height
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupLogging installs the process logger. Logs go to cfg.LogFile when set;
// otherwise to fallback, which may be nil to discard them. The returned
// function closes the log file.
func setupLogging(cfg config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	level := log.InfoLevel
	if cfg.LogLevel != "" {
		var err error
		if level, err = log.ParseLevel(cfg.LogLevel); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	w, closeFn := fallback, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}
	if w == nil {
		anim.SetLogger(nil)
		return anim.Logger(), closeFn, nil
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "cube",
	})
	logger := slog.New(handler)
	anim.SetLogger(logger)
	return logger, closeFn, nil
}
