package render

import (
	"errors"
	"testing"

	"github.com/taigrr/eclat/pkg/math3d"
)

// mockMesh is a minimal MeshRenderer.
type mockMesh struct {
	vertices []math3d.Vec3
	colours  []Colour
	faces    [][3]int
}

func (m *mockMesh) VertexCount() int   { return len(m.vertices) }
func (m *mockMesh) TriangleCount() int { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int {
	return m.faces[i]
}

func (m *mockMesh) GetVertex(i int) (math3d.Vec3, Colour) {
	c := White
	if i < len(m.colours) {
		c = m.colours[i]
	}
	return m.vertices[i], c
}

// boundedMock adds bounds computed from the vertices.
type boundedMock struct {
	mockMesh
}

func (m *boundedMock) GetBounds() (lo, hi math3d.Vec3) {
	lo, hi = m.vertices[0], m.vertices[0]
	for _, v := range m.vertices[1:] {
		lo, hi = lo.Min(v), hi.Max(v)
	}
	return lo, hi
}

// pipelineScene is a camera at (0, 0, 5) looking at the origin through a
// 2x2 view plane at distance 1. World (x, y, 0) lands on NDC (x/5, y/5).
func pipelineScene(t testing.TB) (*Camera, Perspective) {
	t.Helper()
	cam, err := LookAt(math3d.V3(0, 0, 5), math3d.Zero3())
	if err != nil {
		t.Fatal(err)
	}
	proj, err := NewPerspective(1, 100, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	return cam, proj
}

var (
	triA = math3d.V3(-1, -1, 0)
	triB = math3d.V3(0, 1, 0)
	triC = math3d.V3(1, -1, 0)
)

func singleTriangle(a, b, c math3d.Vec3) *mockMesh {
	return &mockMesh{
		vertices: []math3d.Vec3{a, b, c},
		colours:  []Colour{Red, Red, Red},
		faces:    [][3]int{{0, 1, 2}},
	}
}

func countSet(pb *PixelBuffer, bg Colour) int {
	n := 0
	for _, v := range pb.Pixels {
		if v != bg.Pack() {
			n++
		}
	}
	return n
}

func TestDrawMeshFrontFacing(t *testing.T) {
	cam, proj := pipelineScene(t)
	pb := newTestBuffer(t, 20, 20)
	pb.Clear(Black)

	stats, err := pb.DrawMesh(singleTriangle(triA, triB, triC), cam, proj)
	if err != nil {
		t.Fatalf("DrawMesh: %v", err)
	}
	if stats.Drawn != 1 || stats.Triangles != 1 {
		t.Errorf("stats = %+v, want one drawn triangle", stats)
	}

	// Screen vertices are (8, 12), (10, 8) and (12, 12).
	if got := pb.Pixel(10, 11); got != Red {
		t.Errorf("pixel (10, 11) = %v, want red", got)
	}
	for _, p := range [][2]int{{8, 12}, {10, 8}, {12, 12}} {
		if got := pb.Pixel(p[0], p[1]); got != Red {
			t.Errorf("vertex pixel %v = %v, want red", p, got)
		}
	}
	if got := pb.Pixel(0, 0); got != Black {
		t.Errorf("pixel (0, 0) = %v, want black", got)
	}
	// NDC +y is up: the apex is above the base.
	if got := pb.Pixel(10, 13); got != Black {
		t.Errorf("pixel below the base = %v, want black", got)
	}
}

func TestDrawMeshCoverageMask(t *testing.T) {
	cam, proj := pipelineScene(t)
	pb := newTestBuffer(t, 20, 20)
	pb.Clear(Black)

	if _, err := pb.DrawMesh(singleTriangle(triA, triB, triC), cam, proj); err != nil {
		t.Fatal(err)
	}

	viewProj, err := viewProjection(cam, proj)
	if err != nil {
		t.Fatal(err)
	}
	var screen [3]math3d.Vec2
	for k, v := range []math3d.Vec3{triA, triB, triC} {
		screen[k] = pb.toScreen(viewProj.MulVec4(math3d.Point(v)).PerspectiveDivide().XY())
	}
	tri := NewTriangle(screen[0], screen[1], screen[2])

	inside := 0
	for y := range pb.Height {
		for x := range pb.Width {
			got := pb.Pixel(x, y)
			if tri.Contains(float64(x), float64(y)) {
				inside++
				if got != Red {
					t.Errorf("covered pixel (%d, %d) = %v, want red", x, y, got)
				}
			} else if got != Black {
				t.Errorf("uncovered pixel (%d, %d) = %v, want black", x, y, got)
			}
		}
	}
	if inside == 0 {
		t.Error("triangle covers no pixels")
	}
}

func TestDrawMeshIgnoresDepthRange(t *testing.T) {
	cam, err := LookAt(math3d.V3(0, 0, 5), math3d.Zero3())
	if err != nil {
		t.Fatal(err)
	}
	shallow, err := NewPerspective(1, 3, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	_, deep := pipelineScene(t)
	tiny := func(v math3d.Vec3) math3d.Vec3 { return math3d.V3(v.X/10, v.Y/10, 4.5) }

	tests := []struct {
		name string
		mesh *boundedMock
		proj Perspective
	}{
		{"beyond far", &boundedMock{*singleTriangle(triA, triB, triC)}, shallow},
		{"closer than near", &boundedMock{*singleTriangle(tiny(triA), tiny(triB), tiny(triC))}, deep},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pb := newTestBuffer(t, 20, 20)
			pb.Clear(Black)
			stats, err := pb.DrawMesh(tc.mesh, cam, tc.proj)
			if err != nil {
				t.Fatal(err)
			}
			if stats.MeshCulled || stats.Drawn != 1 {
				t.Errorf("stats = %+v, want one drawn triangle", stats)
			}
			if got := pb.Pixel(10, 11); got != Red {
				t.Errorf("pixel (10, 11) = %v, want red", got)
			}
		})
	}
}

func TestDrawMeshCullsReversedWinding(t *testing.T) {
	cam, proj := pipelineScene(t)
	pb := newTestBuffer(t, 20, 20)
	pb.Clear(Black)

	stats, err := pb.DrawMesh(singleTriangle(triA, triC, triB), cam, proj)
	if err != nil {
		t.Fatal(err)
	}
	if stats.BackFacing != 1 || stats.Drawn != 0 {
		t.Errorf("stats = %+v, want one back-facing triangle", stats)
	}
	if n := countSet(pb, Black); n != 0 {
		t.Errorf("%d pixels written by a culled triangle", n)
	}

	pb.DisableBackfaceCulling = true
	stats, err = pb.DrawMesh(singleTriangle(triA, triC, triB), cam, proj)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Drawn != 1 {
		t.Errorf("stats = %+v, want drawn with culling disabled", stats)
	}
	if got := pb.Pixel(10, 11); got != Red {
		t.Errorf("pixel (10, 11) = %v, want red", got)
	}
}

func TestDrawMeshCullingSymmetry(t *testing.T) {
	cam, proj := pipelineScene(t)

	// Every permutation of the same three vertices is drawn or culled
	// according to its cyclic order only.
	orders := []struct {
		name  string
		order [3]int
		front bool
	}{
		{"abc", [3]int{0, 1, 2}, true},
		{"bca", [3]int{1, 2, 0}, true},
		{"cab", [3]int{2, 0, 1}, true},
		{"acb", [3]int{0, 2, 1}, false},
		{"cba", [3]int{2, 1, 0}, false},
		{"bac", [3]int{1, 0, 2}, false},
	}
	verts := []math3d.Vec3{triA, triB, triC}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			pb := newTestBuffer(t, 20, 20)
			mesh := &mockMesh{vertices: verts, faces: [][3]int{tc.order}}
			stats, err := pb.DrawMesh(mesh, cam, proj)
			if err != nil {
				t.Fatal(err)
			}
			if got := stats.Drawn == 1; got != tc.front {
				t.Errorf("drawn = %v, want %v (stats %+v)", got, tc.front, stats)
			}
		})
	}
}

func TestDrawMeshPainterOrder(t *testing.T) {
	cam, proj := pipelineScene(t)
	pb := newTestBuffer(t, 20, 20)

	mesh := &mockMesh{
		vertices: []math3d.Vec3{triA, triB, triC, triA.Add(math3d.V3(0, 0, -1)), triB.Add(math3d.V3(0, 0, -1)), triC.Add(math3d.V3(0, 0, -1))},
		colours:  []Colour{Red, Red, Red, Blue, Blue, Blue},
		faces:    [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
	if _, err := pb.DrawMesh(mesh, cam, proj); err != nil {
		t.Fatal(err)
	}
	// The second triangle is further away but drawn last.
	if got := pb.Pixel(10, 11); got != Blue {
		t.Errorf("pixel (10, 11) = %v, want blue", got)
	}
}

func TestDrawMeshSkips(t *testing.T) {
	cam, proj := pipelineScene(t)

	tests := []struct {
		name  string
		mesh  MeshRenderer
		check func(Stats) bool
	}{
		{
			"degenerate",
			singleTriangle(math3d.V3(-1, -1, 0), math3d.V3(0, 0, 0), math3d.V3(1, 1, 0)),
			func(s Stats) bool { return s.Degenerate == 1 },
		},
		{
			"behind camera",
			singleTriangle(math3d.V3(-1, -1, 10), math3d.V3(0, 1, 10), math3d.V3(1, -1, 10)),
			func(s Stats) bool { return s.BehindCamera == 1 },
		},
		{
			"one vertex behind",
			singleTriangle(triA, math3d.V3(0, 1, 6), triC),
			func(s Stats) bool { return s.BehindCamera == 1 },
		},
		{
			"outside frustum",
			&boundedMock{*singleTriangle(
				math3d.V3(1000, 0, 0), math3d.V3(1001, 1, 0), math3d.V3(1002, 0, 0),
			)},
			func(s Stats) bool { return s.MeshCulled && s.Triangles == 0 },
		},
		{
			"empty",
			&mockMesh{},
			func(s Stats) bool { return s == Stats{} },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pb := newTestBuffer(t, 20, 20)
			pb.Clear(Black)
			stats, err := pb.DrawMesh(tc.mesh, cam, proj)
			if err != nil {
				t.Fatal(err)
			}
			if !tc.check(stats) {
				t.Errorf("unexpected stats %+v", stats)
			}
			if stats.Drawn != 0 {
				t.Errorf("Drawn = %d, want 0", stats.Drawn)
			}
			if n := countSet(pb, Black); n != 0 {
				t.Errorf("%d pixels written", n)
			}
		})
	}
}

func TestDrawMeshBoundedVisible(t *testing.T) {
	cam, proj := pipelineScene(t)
	pb := newTestBuffer(t, 20, 20)

	stats, err := pb.DrawMesh(&boundedMock{*singleTriangle(triA, triB, triC)}, cam, proj)
	if err != nil {
		t.Fatal(err)
	}
	if stats.MeshCulled || stats.Drawn != 1 {
		t.Errorf("stats = %+v, want drawn", stats)
	}
}

func TestDrawMeshErrors(t *testing.T) {
	cam, proj := pipelineScene(t)

	tests := []struct {
		name    string
		mesh    MeshRenderer
		cam     *Camera
		proj    Perspective
		wantErr error
	}{
		{
			"index out of range",
			&mockMesh{vertices: []math3d.Vec3{triA, triB, triC}, faces: [][3]int{{0, 1, 2}, {0, 1, 5}}},
			cam, proj, ErrInvalidMesh,
		},
		{
			"negative index",
			&mockMesh{vertices: []math3d.Vec3{triA, triB, triC}, faces: [][3]int{{0, -1, 2}}},
			cam, proj, ErrInvalidMesh,
		},
		{"nil mesh", nil, cam, proj, ErrInvalidMesh},
		{"nil camera", singleTriangle(triA, triB, triC), nil, proj, ErrDegenerateCamera},
		{"zero projection", singleTriangle(triA, triB, triC), cam, Perspective{}, ErrInvalidPerspective},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pb := newTestBuffer(t, 20, 20)
			pb.Clear(Black)
			_, err := pb.DrawMesh(tc.mesh, tc.cam, tc.proj)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if n := countSet(pb, Black); n != 0 {
				t.Errorf("%d pixels written despite the error", n)
			}
		})
	}
}

func TestRender(t *testing.T) {
	cam, proj := pipelineScene(t)
	mesh := singleTriangle(triA, triB, triC)

	buf := make([]uint32, 400)
	stats, err := Render(buf, 20, 20, mesh, cam, proj)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Drawn != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if buf[11*20+10] != Red.Pack() {
		t.Errorf("buf[(10, 11)] = %#x, want red", buf[11*20+10])
	}

	if _, err := Render(make([]uint32, 10), 20, 20, mesh, cam, proj); !errors.Is(err, ErrBufferSize) {
		t.Errorf("short buffer err = %v, want ErrBufferSize", err)
	}
}
