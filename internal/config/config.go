// Package config loads eclat's JSON settings and merges command line flags.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

// Config holds render and viewer settings.
type Config struct {
	// Frame
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Background  string `json:"background"`
	Output      string `json:"output"`
	Supersample int    `json:"supersample"`

	// Projection
	Near       float64 `json:"near"`
	Far        float64 `json:"far"`
	FOVDegrees float64 `json:"fov_degrees"`

	// Camera; nil leaves the choice to the scene
	Eye    *[3]float64 `json:"eye"`
	Target *[3]float64 `json:"target"`

	Wireframe     bool  `json:"wireframe"`
	CullBackfaces *bool `json:"cull_backfaces"`

	// Viewers
	FPS      int    `json:"fps"`
	LogLevel string `json:"log_level"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	Width       int
	Height      int
	Background  string
	Output      string
	Supersample int
	FOVDegrees  float64
	Wireframe   bool
	NoCull      bool
	FPS         int
	LogLevel    string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flags over the file values, then fills defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.FOVDegrees > 0 {
		c.FOVDegrees = flags.FOVDegrees
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.NoCull {
		off := false
		c.CullBackfaces = &off
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.Output == "" {
		c.Output = "out.png"
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= 0 {
		c.Far = 100
	}
	if c.FOVDegrees <= 0 {
		c.FOVDegrees = 60
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks a resolved config.
func (c Config) Validate() error {
	switch {
	case c.Supersample > 8:
		return fmt.Errorf("config: supersample %d above 8", c.Supersample)
	case c.Far <= c.Near:
		return fmt.Errorf("config: far %v must exceed near %v", c.Far, c.Near)
	case c.FOVDegrees >= 180:
		return fmt.Errorf("config: fov_degrees %v must be below 180", c.FOVDegrees)
	}
	if _, err := c.BackgroundColour(); err != nil {
		return err
	}
	return nil
}

// BackgroundColour parses the hex background, e.g. "#1e1e2e".
func (c Config) BackgroundColour() (render.Colour, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return render.Colour{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return render.NewColour(r, g, b), nil
}

// Perspective builds the projection for a width x height frame.
func (c Config) Perspective(width, height int) (render.Perspective, error) {
	aspect := float64(width) / float64(max(height, 1))
	return render.PerspectiveFOV(c.FOVDegrees*math.Pi/180, aspect, c.Near, c.Far)
}

// EyeOr returns the configured eye position, or def when none is set.
func (c Config) EyeOr(def math3d.Vec3) math3d.Vec3 {
	if c.Eye == nil {
		return def
	}
	return math3d.V3(c.Eye[0], c.Eye[1], c.Eye[2])
}

// TargetOr returns the configured look-at target, or def when none is set.
func (c Config) TargetOr(def math3d.Vec3) math3d.Vec3 {
	if c.Target == nil {
		return def
	}
	return math3d.V3(c.Target[0], c.Target[1], c.Target[2])
}

// Cull reports whether back-face culling is on. It defaults to true.
func (c Config) Cull() bool {
	return c.CullBackfaces == nil || *c.CullBackfaces
}
