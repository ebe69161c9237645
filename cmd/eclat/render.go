package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/eclat/pkg/export"
	"github.com/taigrr/eclat/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [model.glb]",
		Short: "Render one frame to an image file",
		Long: "Render one frame and save it. The format follows the output extension:\n" +
			".png, .webp, .bmp, .tif or .tiff.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			return a.renderImage(args, opts.cube)
		},
	}

	cmd.Flags().StringVarP(&opts.flags.Output, "output", "o", "", "Output image path (default out.png)")
	cmd.Flags().IntVar(&opts.flags.Supersample, "supersample", 0, "Render at N times the size and downsample (1-8)")
	return cmd
}

func (a *app) renderImage(args []string, cube bool) error {
	s, err := a.loadScene(args, cube)
	if err != nil {
		return err
	}
	cam, err := render.LookAt(s.eye, s.target)
	if err != nil {
		return err
	}

	ss := a.cfg.Supersample
	w, h := a.cfg.Width*ss, a.cfg.Height*ss
	pb, err := render.NewPixelBuffer(make([]uint32, w*h), w, h)
	if err != nil {
		return err
	}

	stats, err := a.drawFrame(pb, s, cam, a.cfg.Wireframe, a.cfg.Cull())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	a.log.Debug("rendered",
		"triangles", stats.Triangles,
		"drawn", stats.Drawn,
		"back_facing", stats.BackFacing,
		"degenerate", stats.Degenerate,
		"behind_camera", stats.BehindCamera,
		"mesh_culled", stats.MeshCulled,
	)

	img := export.Downsample(pb.ToImage(), ss)
	if err := export.Save(a.cfg.Output, img); err != nil {
		return err
	}
	a.log.Info("saved", "path", a.cfg.Output, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
