package models

import (
	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

// DemoEye is where the demo scene's camera sits; it looks at the origin.
var DemoEye = math3d.V3(10, 10, -5)

// cubeCorners returns the eight corners of the cube [-h, h]^3. Corner i has
// x = +h when bit 2 is set, y when bit 1 is set and z when bit 0 is set.
func cubeCorners(h float64) []math3d.Vec3 {
	corners := make([]math3d.Vec3, 8)
	for i := range corners {
		c := math3d.V3(-h, -h, -h)
		if i&4 != 0 {
			c.X = h
		}
		if i&2 != 0 {
			c.Y = h
		}
		if i&1 != 0 {
			c.Z = h
		}
		corners[i] = c
	}
	return corners
}

// cycleColours assigns red, green and blue to n vertices in turn.
func cycleColours(n int) []render.Colour {
	out := make([]render.Colour, n)
	for i := range out {
		out[i] = fallbackColours[i%len(fallbackColours)]
	}
	return out
}

// cubeQuads lists each face counter-clockwise as seen from outside.
var cubeQuads = [6][4]int{
	{4, 6, 7, 5}, // +X
	{0, 1, 3, 2}, // -X
	{2, 3, 7, 6}, // +Y
	{0, 4, 5, 1}, // -Y
	{1, 5, 7, 3}, // +Z
	{0, 2, 6, 4}, // -Z
}

// NewCube returns a cube of the given edge length centered on the origin.
// Faces wind clockwise when seen from outside, so only the faces turned toward
// the camera survive back-face culling.
func NewCube(size float64) *Mesh {
	indices := make([]int, 0, 36)
	for _, q := range cubeQuads {
		indices = append(indices, q[0], q[2], q[1], q[0], q[3], q[2])
	}

	m := &Mesh{
		Name:     "cube",
		Vertices: cubeCorners(size / 2),
		Indices:  indices,
		Colours:  cycleColours(8),
	}
	m.CalculateBounds()
	return m
}

// DemoQuads returns the demo scene: the corners of a 2x2x2 cube joined into
// its two x = ±1 faces, two triangles each, coloured red, green and blue in
// turn. The triangles of each face wind in opposite directions, so one of each
// pair is culled unless back-face culling is disabled.
func DemoQuads() *Mesh {
	m := &Mesh{
		Name:     "demo",
		Vertices: cubeCorners(1),
		Indices:  []int{0, 1, 2, 1, 2, 3, 4, 5, 6, 5, 6, 7},
		Colours:  cycleColours(8),
	}
	m.CalculateBounds()
	return m
}
