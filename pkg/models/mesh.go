// Package models provides mesh representation and loading for eclat.
package models

import (
	"fmt"

	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

// Mesh is an indexed triangle list with one colour per vertex.
// Every three consecutive indices form a face.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Indices  []int
	Colours  []render.Colour

	// Bounding box (calculated on construction)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh builds a mesh and checks its invariants. The slices are used as
// given, not copied.
func NewMesh(vertices []math3d.Vec3, indices []int, colours []render.Colour) (*Mesh, error) {
	m := &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Colours:  colours,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CalculateBounds()
	return m, nil
}

// Validate reports an error wrapping render.ErrInvalidMesh if the index count
// is not a multiple of three, an index is out of range, or the colour count
// differs from the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", render.ErrInvalidMesh, len(m.Indices))
	}
	if len(m.Colours) != len(m.Vertices) {
		return fmt.Errorf("%w: %d colours for %d vertices", render.ErrInvalidMesh, len(m.Colours), len(m.Vertices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at %d out of range [0, %d)", render.ErrInvalidMesh, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position and colour of vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (math3d.Vec3, render.Colour) {
	return m.Vertices[i], m.Colours[i]
}

// GetFace returns the vertex indices of triangle i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return [3]int{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.BoundedMesh interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Transformed returns a copy of the mesh with every vertex multiplied by mat.
func (m *Mesh) Transformed(mat math3d.Mat4) *Mesh {
	clone := m.Clone()
	for i, v := range clone.Vertices {
		clone.Vertices[i] = mat.MulPoint(v)
	}
	clone.CalculateBounds()
	return clone
}

// Normalized returns a copy centered on the origin whose largest extent is 2,
// so it fits the unit cube [-1, 1]. Empty or flat-to-a-point meshes are only
// centered.
func (m *Mesh) Normalized() *Mesh {
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	mat := math3d.Translate(m.Center().Negate())
	if extent > 0 {
		s := 2 / extent
		mat = math3d.Scale(math3d.V3(s, s, s)).Mul(mat)
	}
	return m.Transformed(mat)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Indices:   make([]int, len(m.Indices)),
		Colours:   make([]render.Colour, len(m.Colours)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Indices, m.Indices)
	copy(clone.Colours, m.Colours)
	return clone
}
