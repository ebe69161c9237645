package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/render"
)

// fallbackColours are cycled over vertices of primitives that carry neither
// COLOR_0 nor a material base colour.
var fallbackColours = []render.Colour{render.Red, render.Green, render.Blue}

// LoadGLTF loads a GLTF or GLB file and returns every triangle primitive of
// every mesh in it as one Mesh.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := MeshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// MeshFromDocument merges the triangle primitives of doc into a single mesh.
// Vertex colours come from COLOR_0 when present, then from the primitive's
// material base colour, then from a red/green/blue cycle. Node transforms are
// not applied.
func MeshFromDocument(doc *gltf.Document) (*Mesh, error) {
	var (
		vertices []math3d.Vec3
		indices  []int
		colours  []render.Colour
	)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			primColours, err := readColours(doc, prim, len(positions))
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read colours: %w", m.Name, err)
			}

			base := len(vertices)
			for _, p := range positions {
				vertices = append(vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
			}
			colours = append(colours, primColours...)

			var primIndices []uint32
			if prim.Indices != nil {
				primIndices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
			} else {
				// No indices, assume sequential triangles
				primIndices = make([]uint32, len(positions))
				for i := range primIndices {
					primIndices[i] = uint32(i)
				}
			}

			// GLTF front faces wind counter-clockwise; the rasterizer expects
			// clockwise, so swap the last two indices of every face.
			for i := 0; i+2 < len(primIndices); i += 3 {
				indices = append(indices,
					base+int(primIndices[i]),
					base+int(primIndices[i+2]),
					base+int(primIndices[i+1]),
				)
			}
		}
	}

	return NewMesh(vertices, indices, colours)
}

// readColours returns n vertex colours for prim.
func readColours(doc *gltf.Document, prim *gltf.Primitive, n int) ([]render.Colour, error) {
	out := make([]render.Colour, n)

	if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		rgba, err := modeler.ReadColor(doc, doc.Accessors[colIdx], nil)
		if err != nil {
			return nil, err
		}
		if len(rgba) != n {
			return nil, fmt.Errorf("%d colours for %d positions", len(rgba), n)
		}
		for i, c := range rgba {
			out[i] = render.NewColour(c[0], c[1], c[2])
		}
		return out, nil
	}

	if c, ok := materialColour(doc, prim); ok {
		for i := range out {
			out[i] = c
		}
		return out, nil
	}

	for i := range out {
		out[i] = fallbackColours[i%len(fallbackColours)]
	}
	return out, nil
}

// materialColour returns the PBR base colour factor of the primitive's material.
func materialColour(doc *gltf.Document, prim *gltf.Primitive) (render.Colour, bool) {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return render.Colour{}, false
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return render.Colour{}, false
	}
	f := pbr.BaseColorFactor
	return render.NewColour(unitByte(f[0]), unitByte(f[1]), unitByte(f[2])), true
}

// unitByte maps [0, 1] to [0, 255].
func unitByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
