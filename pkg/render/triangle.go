package render

import (
	"image"
	"math"

	"github.com/taigrr/eclat/pkg/math3d"
)

// coverageEpsilon absorbs floating point error in the inside test so that
// pixels lying exactly on an edge are covered.
const coverageEpsilon = 1e-9

// Triangle is three points in screen-space pixel coordinates.
type Triangle struct {
	P1, P2, P3 math3d.Vec2
}

// NewTriangle creates a triangle from its three vertices.
func NewTriangle(p1, p2, p3 math3d.Vec2) Triangle {
	return Triangle{p1, p2, p3}
}

// AABB is an integer pixel bounding box. Both corners are inclusive.
type AABB struct {
	TopLeft     image.Point
	BottomRight image.Point
}

// Denominator returns the shared denominator of the barycentric weights.
// It is twice the signed area of the triangle.
func (t Triangle) Denominator() float64 {
	return (t.P2.Y-t.P3.Y)*(t.P1.X-t.P3.X) + (t.P3.X-t.P2.X)*(t.P1.Y-t.P3.Y)
}

// IsDegenerate reports whether the three vertices are collinear.
func (t Triangle) IsDegenerate() bool {
	return t.Denominator() == 0
}

// Barycentric returns the weights (λ1, λ2, λ3) of (x, y) relative to P1, P2
// and P3. The result is undefined for a degenerate triangle.
func (t Triangle) Barycentric(x, y float64) math3d.Vec3 {
	denom := t.Denominator()
	l1 := ((t.P2.Y-t.P3.Y)*(x-t.P3.X) + (t.P3.X-t.P2.X)*(y-t.P3.Y)) / denom
	l2 := ((t.P3.Y-t.P1.Y)*(x-t.P3.X) + (t.P1.X-t.P3.X)*(y-t.P3.Y)) / denom
	return math3d.V3(l1, l2, 1-l1-l2)
}

// Contains reports whether (x, y) is inside the closed triangle.
func (t Triangle) Contains(x, y float64) bool {
	if t.IsDegenerate() {
		return false
	}
	return covered(t.Barycentric(x, y))
}

// AABB returns the tightest integer pixel box containing all three vertices.
func (t Triangle) AABB() AABB {
	lo := t.P1.Min(t.P2).Min(t.P3).Floor()
	hi := t.P1.Max(t.P2).Max(t.P3).Ceil()
	return AABB{
		TopLeft:     image.Pt(toPixel(lo.X), toPixel(lo.Y)),
		BottomRight: image.Pt(toPixel(hi.X), toPixel(hi.Y)),
	}
}

// Clip intersects the box with [0, width) x [0, height).
// ok is false when nothing remains.
func (b AABB) Clip(width, height int) (clipped AABB, ok bool) {
	clipped = AABB{
		TopLeft:     image.Pt(max(b.TopLeft.X, 0), max(b.TopLeft.Y, 0)),
		BottomRight: image.Pt(min(b.BottomRight.X, width-1), min(b.BottomRight.Y, height-1)),
	}
	ok = clipped.TopLeft.X <= clipped.BottomRight.X && clipped.TopLeft.Y <= clipped.BottomRight.Y
	return clipped, ok
}

func covered(w math3d.Vec3) bool {
	return inUnit(w.X) && inUnit(w.Y) && inUnit(w.Z)
}

func inUnit(v float64) bool {
	return v >= -coverageEpsilon && v <= 1+coverageEpsilon
}

// signedArea2 returns twice the signed area of (a, b, c).
// Negative means clockwise in a y-up frame.
func signedArea2(a, b, c math3d.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// toPixel converts a screen coordinate bound to an int, saturating values far
// outside the buffer so the conversion never overflows.
func toPixel(v float64) int {
	const limit = 1 << 30
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(-limit, math.Min(limit, v)))
}
