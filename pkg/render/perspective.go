package render

import (
	"fmt"
	"math"

	"github.com/taigrr/eclat/pkg/math3d"
)

// Perspective is a symmetric view frustum described by its near and far
// distances and the size of the view plane at the near distance.
type Perspective struct {
	Near   float64
	Far    float64
	Width  float64
	Height float64
}

// NewPerspective validates and returns a projection.
func NewPerspective(near, far, width, height float64) (Perspective, error) {
	p := Perspective{Near: near, Far: far, Width: width, Height: height}
	if err := p.Validate(); err != nil {
		return Perspective{}, err
	}
	return p, nil
}

// PerspectiveFOV derives the near view plane from a vertical field of view
// in radians and a width/height aspect ratio.
func PerspectiveFOV(fovy, aspect, near, far float64) (Perspective, error) {
	if fovy <= 0 || fovy >= math.Pi {
		return Perspective{}, fmt.Errorf("%w: fov %v out of (0, pi)", ErrInvalidPerspective, fovy)
	}
	height := 2 * near * math.Tan(fovy/2)
	return NewPerspective(near, far, height*aspect, height)
}

// Validate checks 0 < near < far and a positive view plane.
func (p Perspective) Validate() error {
	switch {
	case !(p.Near > 0):
		return fmt.Errorf("%w: near %v must be positive", ErrInvalidPerspective, p.Near)
	case !(p.Far > p.Near):
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalidPerspective, p.Far, p.Near)
	case !(p.Width > 0) || !(p.Height > 0):
		return fmt.Errorf("%w: view plane %vx%v must be positive", ErrInvalidPerspective, p.Width, p.Height)
	}
	return nil
}

// Matrix returns the projection matrix. View space z in [-far, -near] maps to
// NDC z in [-1, 1]; w receives -z for the perspective divide.
func (p Perspective) Matrix() math3d.Mat4 {
	n, f := p.Near, p.Far
	r, t := p.Width/2, p.Height/2
	return math3d.FromRows(
		math3d.V4(n/r, 0, 0, 0),
		math3d.V4(0, n/t, 0, 0),
		math3d.V4(0, 0, -(f+n)/(f-n), -2*f*n/(f-n)),
		math3d.V4(0, 0, -1, 0),
	)
}
