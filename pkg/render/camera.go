package render

import (
	"fmt"

	"github.com/taigrr/eclat/pkg/math3d"
)

// parallelEpsilon is the smallest |forward × up| accepted when building a basis.
const parallelEpsilon = 1e-12

// Camera is a viewpoint with an orthonormal basis. The basis is fixed at
// construction; build a new camera to move it.
type Camera struct {
	position math3d.Vec3
	forward  math3d.Vec3
	right    math3d.Vec3
	up       math3d.Vec3
}

// LookAt creates a camera at position looking at target, using world up
// (0, 1, 0) as the up hint.
func LookAt(position, target math3d.Vec3) (*Camera, error) {
	return LookAtUp(position, target, math3d.Up())
}

// LookAtUp creates a camera at position looking at target. The up hint only
// needs to be non-parallel to the view direction; the stored up vector is
// re-orthogonalised.
func LookAtUp(position, target, up math3d.Vec3) (*Camera, error) {
	dir := target.Sub(position)
	if dir.LenSq() == 0 {
		return nil, fmt.Errorf("%w: target equals position %v", ErrDegenerateCamera, position)
	}
	forward := dir.Normalize()

	side := forward.Cross(up)
	if side.LenSq() < parallelEpsilon {
		return nil, fmt.Errorf("%w: view direction %v parallel to up %v", ErrDegenerateCamera, forward, up)
	}
	right := side.Normalize()

	return &Camera{
		position: position,
		forward:  forward,
		right:    right,
		up:       right.Cross(forward),
	}, nil
}

// Position returns the eye position.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 { return c.forward }

// Right returns the unit right vector.
func (c *Camera) Right() math3d.Vec3 { return c.right }

// Up returns the unit up vector.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// ViewMatrix returns the world-to-view transform.
// View = Rotation * Translation(-position). View space is right-handed with
// the camera looking down -Z, so the third rotation row is -forward.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	r, u, b := c.right, c.up, c.forward.Negate()
	rot := math3d.FromRows(
		math3d.V4(r.X, r.Y, r.Z, 0),
		math3d.V4(u.X, u.Y, u.Z, 0),
		math3d.V4(b.X, b.Y, b.Z, 0),
		math3d.V4(0, 0, 0, 1),
	)
	return rot.Mul(math3d.Translate(c.position.Negate()))
}
