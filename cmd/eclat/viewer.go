package main

import (
	"math/rand"

	"github.com/taigrr/eclat/internal/orbit"
)

const (
	// nudge is the angular velocity one key press adds, in radians per frame.
	nudge    = 0.02
	zoomStep = 0.5
)

// viewState is what the interactive viewers let the user change.
type viewState struct {
	orbit     *orbit.Orbit
	wireframe bool
	cull      bool
	quit      bool
}

func (a *app) newViewState(s scene) *viewState {
	return &viewState{
		orbit:     orbit.New(a.cfg.FPS, s.eye, s.target),
		wireframe: a.cfg.Wireframe,
		cull:      a.cfg.Cull(),
	}
}

// handleKey applies a named key press. Names follow the terminal key
// vocabulary ("left", "space", "escape").
func (v *viewState) handleKey(key string) {
	switch key {
	case "escape", "q", "ctrl+c":
		v.quit = true
	case "a", "left":
		v.orbit.Impulse(-nudge, 0)
	case "d", "right":
		v.orbit.Impulse(nudge, 0)
	case "w", "up":
		v.orbit.Impulse(0, nudge)
	case "s", "down":
		v.orbit.Impulse(0, -nudge)
	case "+", "=":
		v.orbit.Zoom(-zoomStep)
	case "-", "_":
		v.orbit.Zoom(zoomStep)
	case "space":
		v.orbit.Impulse((rand.Float64()-0.5)*0.3, (rand.Float64()-0.5)*0.3)
	case "r":
		v.orbit.Reset()
	case "x":
		v.wireframe = !v.wireframe
	case "c":
		v.cull = !v.cull
	}
}

// viewerKeys lists the keys handleKey understands.
var viewerKeys = []string{
	"escape", "q", "ctrl+c",
	"a", "left", "d", "right", "w", "up", "s", "down",
	"+", "=", "-", "_", "space", "r", "x", "c",
}
