package render

import (
	"math"

	"github.com/taigrr/eclat/pkg/math3d"
)

// Colour is an opaque 8-bit-per-channel RGB colour.
type Colour struct {
	R, G, B uint8
}

// Named colours.
var (
	Black = Colour{0, 0, 0}
	White = Colour{255, 255, 255}
	Red   = Colour{255, 0, 0}
	Green = Colour{0, 255, 0}
	Blue  = Colour{0, 0, 255}
)

// NewColour creates a colour from its three channels.
func NewColour(r, g, b uint8) Colour {
	return Colour{r, g, b}
}

// Pack returns the colour as a 0x00RRGGBB word.
func (c Colour) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Pack. The top byte is ignored.
func Unpack(v uint32) Colour {
	return Colour{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// RGBA implements color.Color. Colours are always opaque.
func (c Colour) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Blend scales every channel by s, rounding to the nearest value.
// Results outside [0, 255] are clamped.
func Blend(s float64, c Colour) Colour {
	return Colour{
		channel(s * float64(c.R)),
		channel(s * float64(c.G)),
		channel(s * float64(c.B)),
	}
}

// Mix returns t*a + (1-t)*b per channel.
func Mix(a, b Colour, t float64) Colour {
	u := 1 - t
	return Colour{
		channel(t*float64(a.R) + u*float64(b.R)),
		channel(t*float64(a.G) + u*float64(b.G)),
		channel(t*float64(a.B) + u*float64(b.B)),
	}
}

// Interpolate blends three colours with barycentric weights w.
func Interpolate(w math3d.Vec3, c1, c2, c3 Colour) Colour {
	return Colour{
		channel(w.X*float64(c1.R) + w.Y*float64(c2.R) + w.Z*float64(c3.R)),
		channel(w.X*float64(c1.G) + w.Y*float64(c2.G) + w.Z*float64(c3.G)),
		channel(w.X*float64(c1.B) + w.Y*float64(c2.B) + w.Z*float64(c3.B)),
	}
}

// WeightColour maps barycentric weights straight to red, green and blue.
// Used to visualise interpolation.
func WeightColour(w math3d.Vec3) Colour {
	return Colour{channel(w.X * 255), channel(w.Y * 255), channel(w.Z * 255)}
}

// channel rounds v and clamps it into a byte.
func channel(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
