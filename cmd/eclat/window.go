package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/eclat/pkg/render"
)

func newWindowCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window [model.glb]",
		Short: "View a model in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			s, err := a.loadScene(args, opts.cube)
			if err != nil {
				return err
			}
			return a.runWindow(s)
		},
	}
	cmd.Flags().IntVar(&opts.flags.FPS, "fps", 0, "Target FPS (default 30)")
	return cmd
}

// windowKeys maps window keys onto the viewer key names.
var windowKeys = map[ebiten.Key]string{
	ebiten.KeyEscape:     "escape",
	ebiten.KeyQ:          "q",
	ebiten.KeyA:          "a",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyD:          "d",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyW:          "w",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyS:          "s",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyEqual:      "=",
	ebiten.KeyMinus:      "-",
	ebiten.KeySpace:      "space",
	ebiten.KeyR:          "r",
	ebiten.KeyX:          "x",
	ebiten.KeyC:          "c",
}

// windowGame presents frames in an ebiten window. The pixel buffer follows
// the window size.
type windowGame struct {
	a     *app
	s     scene
	view  *viewState
	pb    *render.PixelBuffer
	img   *ebiten.Image
	pix   []byte
	err   error
	stats render.Stats
}

func (a *app) runWindow(s scene) error {
	g := &windowGame{a: a, s: s, view: a.newViewState(s)}

	ebiten.SetWindowTitle("eclat")
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.FPS)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	a.log.Debug("window closed", "last_drawn", g.stats.Drawn)
	return nil
}

func (g *windowGame) Update() error {
	if g.err != nil {
		return g.err
	}
	for key, name := range windowKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.view.handleKey(name)
		}
	}
	if g.view.quit {
		return ebiten.Termination
	}
	g.view.orbit.Update()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if g.pb == nil || g.pb.Width != w || g.pb.Height != h {
		pb, err := render.NewPixelBuffer(make([]uint32, w*h), w, h)
		if err != nil {
			g.err = err
			return
		}
		g.pb = pb
		g.pix = make([]byte, w*h*4)
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}

	cam, err := g.view.orbit.Camera()
	if err != nil {
		g.err = err
		return
	}
	g.stats, err = g.a.drawFrame(g.pb, g.s, cam, g.view.wireframe, g.view.cull)
	if err != nil {
		g.err = err
		return
	}

	g.pb.WriteRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
