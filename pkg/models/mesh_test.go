package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

func triangleVertices() []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(-1, 0, 2),
		math3d.V3(3, -2, 0),
		math3d.V3(0, 4, -1),
	}
}

func TestNewMeshValidation(t *testing.T) {
	rgb := []render.Colour{render.Red, render.Green, render.Blue}

	tests := []struct {
		name    string
		indices []int
		colours []render.Colour
		wantErr bool
	}{
		{"valid", []int{0, 1, 2}, rgb, false},
		{"empty indices", nil, rgb, false},
		{"partial triangle", []int{0, 1}, rgb, true},
		{"index too large", []int{0, 1, 3}, rgb, true},
		{"negative index", []int{0, -1, 2}, rgb, true},
		{"missing colour", []int{0, 1, 2}, rgb[:2], true},
		{"extra colour", []int{0, 1, 2}, append(rgb, render.White), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMesh(triangleVertices(), tc.indices, tc.colours)
			if tc.wantErr {
				if !errors.Is(err, render.ErrInvalidMesh) {
					t.Errorf("err = %v, want ErrInvalidMesh", err)
				}
				if m != nil {
					t.Error("mesh returned alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMeshAccessors(t *testing.T) {
	m, err := NewMesh(triangleVertices(), []int{0, 1, 2, 2, 1, 0}, []render.Colour{render.Red, render.Green, render.Blue})
	if err != nil {
		t.Fatal(err)
	}

	if m.VertexCount() != 3 || m.TriangleCount() != 2 {
		t.Errorf("counts = %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if f := m.GetFace(1); f != [3]int{2, 1, 0} {
		t.Errorf("GetFace(1) = %v", f)
	}
	pos, c := m.GetVertex(1)
	if pos != math3d.V3(3, -2, 0) || c != render.Green {
		t.Errorf("GetVertex(1) = %v, %v", pos, c)
	}

	// Mesh satisfies the renderer interfaces.
	var _ render.BoundedMesh = m
	if err := render.ValidateMesh(m); err != nil {
		t.Errorf("ValidateMesh: %v", err)
	}
}

func TestMeshBounds(t *testing.T) {
	m, err := NewMesh(triangleVertices(), []int{0, 1, 2}, cycleColours(3))
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := m.GetBounds()
	if lo != math3d.V3(-1, -2, -1) || hi != math3d.V3(3, 4, 2) {
		t.Errorf("bounds = %v .. %v", lo, hi)
	}
	if c := m.Center(); c != math3d.V3(1, 1, 0.5) {
		t.Errorf("Center() = %v", c)
	}
	if s := m.Size(); s != math3d.V3(4, 6, 3) {
		t.Errorf("Size() = %v", s)
	}

	empty, err := NewMesh(nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if lo, hi := empty.GetBounds(); lo != math3d.Zero3() || hi != math3d.Zero3() {
		t.Errorf("empty bounds = %v .. %v", lo, hi)
	}
}

func TestMeshTransformed(t *testing.T) {
	m, err := NewMesh(triangleVertices(), []int{0, 1, 2}, cycleColours(3))
	if err != nil {
		t.Fatal(err)
	}

	moved := m.Transformed(math3d.Translate(math3d.V3(10, 0, 0)))
	if moved.Vertices[0] != math3d.V3(9, 0, 2) {
		t.Errorf("moved vertex = %v", moved.Vertices[0])
	}
	if moved.BoundsMin.X != 9 || moved.BoundsMax.X != 13 {
		t.Errorf("bounds not recalculated: %v .. %v", moved.BoundsMin, moved.BoundsMax)
	}
	if m.Vertices[0] != math3d.V3(-1, 0, 2) {
		t.Error("Transformed modified the original mesh")
	}
}

func TestMeshNormalized(t *testing.T) {
	m, err := NewMesh(triangleVertices(), []int{0, 1, 2}, cycleColours(3))
	if err != nil {
		t.Fatal(err)
	}

	n := m.Normalized()
	c := n.Center()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 || math.Abs(c.Z) > 1e-9 {
		t.Errorf("Center() = %v, want origin", c)
	}
	s := n.Size()
	if math.Abs(max(s.X, s.Y, s.Z)-2) > 1e-9 {
		t.Errorf("Size() = %v, want largest extent 2", s)
	}
}

func TestMeshClone(t *testing.T) {
	m := NewCube(2)
	clone := m.Clone()

	clone.Vertices[0] = math3d.V3(100, 100, 100)
	clone.Indices[0] = 7
	clone.Colours[0] = render.White
	if m.Vertices[0] == clone.Vertices[0] || m.Indices[0] == 7 || m.Colours[0] == render.White {
		t.Error("Clone shares memory with the original")
	}
	if clone.Name != m.Name || clone.TriangleCount() != m.TriangleCount() {
		t.Error("Clone lost data")
	}
}
