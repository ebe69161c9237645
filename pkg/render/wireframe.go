package render

import (
	"math"

	"github.com/taigrr/eclat/pkg/math3d"
)

// DrawMeshWireframe projects every triangle edge of mesh and draws it with
// DrawLine. Edges touching a vertex behind the camera are skipped, as are
// edges with an endpoint far off screen. Winding is ignored.
func (pb *PixelBuffer) DrawMeshWireframe(mesh MeshRenderer, cam *Camera, proj Perspective, c Colour) error {
	viewProj, err := viewProjection(cam, proj)
	if err != nil {
		return err
	}
	if err := ValidateMesh(mesh); err != nil {
		return err
	}

	// Project each vertex once; faces share them.
	type projected struct {
		x, y    int
		visible bool
	}
	verts := make([]projected, mesh.VertexCount())
	margin := float64(4 * (pb.Width + pb.Height))
	for i := range verts {
		pos, _ := mesh.GetVertex(i)
		clip := viewProj.MulVec4(math3d.Point(pos))
		if clip.W <= 0 {
			continue
		}
		s := pb.toScreen(clip.PerspectiveDivide().XY())
		if math.Abs(s.X) > margin || math.Abs(s.Y) > margin {
			continue
		}
		verts[i] = projected{x: int(math.Round(s.X)), y: int(math.Round(s.Y)), visible: true}
	}

	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		for k := range 3 {
			a, b := verts[f[k]], verts[f[(k+1)%3]]
			if !a.visible || !b.visible {
				continue
			}
			pb.DrawLine(a.x, a.y, b.x, b.y, c)
		}
	}
	return nil
}
