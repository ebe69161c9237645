package render

import (
	"github.com/taigrr/eclat/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// planeFromRow builds a plane from a combination of clip-space rows.
func planeFromRow(v math3d.Vec4) Plane {
	p := Plane{Normal: math3d.V3(v.X, v.Y, v.Z), D: v.W}
	p.Normalize()
	return p
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six inward-facing planes of a view volume, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the frustum planes of a view-projection matrix
// (Gribb/Hartmann). A point is inside when -w <= x, y, z <= w in clip space.
func NewFrustum(viewProj math3d.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	add := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X+b.X, a.Y+b.Y, a.Z+b.Z, a.W+b.W) }
	sub := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X-b.X, a.Y-b.Y, a.Z-b.Z, a.W-b.W) }

	return Frustum{Planes: [6]Plane{
		planeFromRow(add(r3, r0)),
		planeFromRow(sub(r3, r0)),
		planeFromRow(add(r3, r1)),
		planeFromRow(sub(r3, r1)),
		planeFromRow(add(r3, r2)),
		planeFromRow(sub(r3, r2)),
	}}
}

// Box is an axis-aligned box in world space.
type Box struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// ContainsPoint reports whether p lies inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox reports whether any part of the box may be inside the frustum.
// It is conservative: a box near a frustum corner can pass without being visible.
func (f Frustum) IntersectsBox(b Box) bool {
	return boxInside(f.Planes[:], b)
}

// OverlapsScreen is IntersectsBox against the left, right, bottom and top
// planes only. A box it rejects projects entirely off-screen; depth never
// rejects a box.
func (f Frustum) OverlapsScreen(b Box) bool {
	return boxInside(f.Planes[:4], b)
}

func boxInside(planes []Plane, b Box) bool {
	for _, plane := range planes {
		// The corner furthest along the normal is the last to leave the plane.
		p := math3d.V3(
			pick(plane.Normal.X >= 0, b.Max.X, b.Min.X),
			pick(plane.Normal.Y >= 0, b.Max.Y, b.Min.Y),
			pick(plane.Normal.Z >= 0, b.Max.Z, b.Min.Z),
		)
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
