// eclat - software 3D rasterizer
// Render glTF models, or the built-in demo scene, to image files, the
// terminal, or a desktop window.
//
// Viewer controls:
//
//	A/D or Left/Right - Orbit left/right
//	W/S or Up/Down    - Orbit up/down
//	+/-               - Zoom in/out
//	Space             - Random spin
//	X                 - Toggle wireframe overlay
//	C                 - Toggle back-face culling
//	R                 - Reset view
//	Esc/Q             - Quit
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/eclat/internal/config"
)

// options holds the flag values shared by every command.
type options struct {
	configPath string
	cube       bool
	flags      config.Flags
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "eclat",
		Short: "Software 3D rasterizer",
		Long: "eclat rasterizes vertex-coloured triangle meshes on the CPU.\n" +
			"Without a model argument it draws the built-in demo scene.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "JSON config file")
	pf.StringVar(&opts.flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.IntVar(&opts.flags.Width, "width", 0, "Frame width in pixels (default 640)")
	pf.IntVar(&opts.flags.Height, "height", 0, "Frame height in pixels (default 480)")
	pf.StringVar(&opts.flags.Background, "bg", "", "Background colour as hex (default #000000)")
	pf.Float64Var(&opts.flags.FOVDegrees, "fov", 0, "Vertical field of view in degrees (default 60)")
	pf.BoolVar(&opts.flags.Wireframe, "wireframe", false, "Draw triangle edges over the fill")
	pf.BoolVar(&opts.flags.NoCull, "no-cull", false, "Draw back-facing triangles")
	pf.BoolVar(&opts.cube, "cube", false, "Use the built-in cube instead of the demo quads")

	root.AddCommand(newRenderCmd(opts), newTermCmd(opts), newWindowCmd(opts))
	return root
}

// app is the resolved configuration and logger for one command run.
type app struct {
	cfg config.Config
	log *log.Logger
}

func newApp(opts *options) (*app, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Resolve(opts.flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "eclat",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	return &app{cfg: cfg, log: logger}, nil
}
