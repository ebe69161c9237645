package render

import (
	"fmt"

	"github.com/taigrr/eclat/pkg/math3d"
)

// MeshRenderer is the read-only view of a mesh the pipeline needs.
// It keeps render independent of the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos math3d.Vec3, c Colour)
	GetFace(i int) [3]int
}

// BoundedMesh extends MeshRenderer with world-space bounds so a mesh can be
// rejected whole when it lies entirely off-screen.
type BoundedMesh interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// Stats counts what happened to the triangles of one render call.
type Stats struct {
	Triangles    int  // Triangles tested
	Drawn        int  // Triangles rasterized
	BackFacing   int  // Culled by winding
	Degenerate   int  // Zero area after projection
	BehindCamera int  // At least one vertex with w <= 0
	MeshCulled   bool // Whole mesh outside the side planes
}

// ValidateMesh checks that every face references an existing vertex.
// Meshes that implement Validate() error are also asked to check themselves.
func ValidateMesh(mesh MeshRenderer) error {
	if mesh == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	if v, ok := mesh.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	n := mesh.VertexCount()
	for i := range mesh.TriangleCount() {
		for _, idx := range mesh.GetFace(i) {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, idx, n)
			}
		}
	}
	return nil
}

// Render draws mesh into buf, a width*height slice of packed colours, as seen
// by cam through proj. Nothing is written if the inputs are invalid.
func Render(buf []uint32, width, height int, mesh MeshRenderer, cam *Camera, proj Perspective) (Stats, error) {
	pb, err := NewPixelBuffer(buf, width, height)
	if err != nil {
		return Stats{}, err
	}
	return pb.DrawMesh(mesh, cam, proj)
}

// DrawMesh transforms every triangle of mesh into screen space, culls
// back-facing and degenerate ones, and fills the rest with their interpolated
// vertex colours. There is no depth test: later triangles overwrite earlier ones.
//
// Front-facing triangles wind clockwise in normalized device coordinates.
func (pb *PixelBuffer) DrawMesh(mesh MeshRenderer, cam *Camera, proj Perspective) (Stats, error) {
	var stats Stats

	viewProj, err := viewProjection(cam, proj)
	if err != nil {
		return stats, err
	}
	if err := ValidateMesh(mesh); err != nil {
		return stats, err
	}

	if outsideFrustum(mesh, viewProj) {
		stats.MeshCulled = true
		return stats, nil
	}

	for i := range mesh.TriangleCount() {
		stats.Triangles++
		face := mesh.GetFace(i)

		var ndc [3]math3d.Vec2
		var colours [3]Colour
		behind := false
		for k, idx := range face {
			pos, c := mesh.GetVertex(idx)
			clip := viewProj.MulVec4(math3d.Point(pos))
			if clip.W <= 0 {
				behind = true
				break
			}
			ndc[k] = clip.PerspectiveDivide().XY()
			colours[k] = c
		}
		if behind {
			stats.BehindCamera++
			continue
		}

		area := signedArea2(ndc[0], ndc[1], ndc[2])
		if area == 0 {
			stats.Degenerate++
			continue
		}
		if area > 0 && !pb.DisableBackfaceCulling {
			stats.BackFacing++
			continue
		}

		tri := NewTriangle(pb.toScreen(ndc[0]), pb.toScreen(ndc[1]), pb.toScreen(ndc[2]))
		if !pb.FillTriangle(tri, colours[0], colours[1], colours[2]) {
			stats.Degenerate++
			continue
		}
		stats.Drawn++
	}

	return stats, nil
}

// toScreen maps NDC x and y in [-1, 1] to pixel coordinates. Row 0 is the top
// of the buffer, so NDC +y points up the screen. Depth is discarded.
func (pb *PixelBuffer) toScreen(ndc math3d.Vec2) math3d.Vec2 {
	hw, hh := float64(pb.Width)/2, float64(pb.Height)/2
	return math3d.V2(ndc.X*hw+hw, hh-ndc.Y*hh)
}

func viewProjection(cam *Camera, proj Perspective) (math3d.Mat4, error) {
	if cam == nil {
		return math3d.Mat4{}, fmt.Errorf("%w: nil camera", ErrDegenerateCamera)
	}
	if err := proj.Validate(); err != nil {
		return math3d.Mat4{}, err
	}
	return proj.Matrix().Mul(cam.ViewMatrix()), nil
}

func outsideFrustum(mesh MeshRenderer, viewProj math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMesh)
	if !ok {
		return false
	}
	lo, hi := bounded.GetBounds()
	return !NewFrustum(viewProj).OverlapsScreen(Box{Min: lo, Max: hi})
}
