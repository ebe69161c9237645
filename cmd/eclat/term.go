package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/eclat/pkg/render"
)

func newTermCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term [model.glb]",
		Short: "View a model in the terminal",
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
			return a.runTerm(cmd.Context(), s)
		},
	}
	cmd.Flags().IntVar(&opts.flags.FPS, "fps", 0, "Target FPS (default 30)")
	return cmd
}

func (a *app) runTerm(ctx context.Context, s scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// mu guards view and the terminal size; events arrive on their own goroutine.
	var mu sync.Mutex
	view := a.newViewState(s)

	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
			case uv.KeyPressEvent:
				for _, key := range viewerKeys {
					if ev.MatchString(key) {
						view.handleKey(key)
						break
					}
				}
				if view.quit {
					cancel()
				}
			}
			mu.Unlock()
		}
	}()

	targetDuration := time.Second / time.Duration(a.cfg.FPS)
	var pb *render.PixelBuffer
	var stats render.Stats

	for {
		select {
		case <-ctx.Done():
			cleanup()
			a.log.Debug("terminal viewer closed", "last_drawn", stats.Drawn)
			return nil
		default:
		}
		now := time.Now()

		mu.Lock()
		pw, ph := render.TerminalSize(width, height)
		if pb == nil || pb.Width != pw || pb.Height != ph {
			pb, err = render.NewPixelBuffer(make([]uint32, pw*ph), pw, ph)
			if err != nil {
				mu.Unlock()
				cleanup()
				return err
			}
		}

		view.orbit.Update()
		cam, err := view.orbit.Camera()
		if err == nil {
			stats, err = a.drawFrame(pb, s, cam, view.wireframe, view.cull)
		}
		if err != nil {
			mu.Unlock()
			cleanup()
			return fmt.Errorf("render: %w", err)
		}

		pb.Draw(term, uv.Rect(0, 0, width, height))
		mu.Unlock()

		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
