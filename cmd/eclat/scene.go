package main

import (
	"fmt"

	"github.com/taigrr/eclat/pkg/math3d"
	"github.com/taigrr/eclat/pkg/models"
	"github.com/taigrr/eclat/pkg/render"
)

// wireColour is the wireframe overlay colour.
var wireColour = render.NewColour(0, 255, 128)

// Default eyes for scenes without a configured camera.
var (
	cubeEye  = math3d.V3(3, 2, 4)
	modelEye = math3d.V3(0, 1, 4)
)

// scene is a mesh and where to look at it from.
type scene struct {
	mesh   *models.Mesh
	eye    math3d.Vec3
	target math3d.Vec3
}

// loadScene returns the model named by args, or a built-in scene when args
// is empty. Loaded models are centered and scaled to fit [-1, 1].
func (a *app) loadScene(args []string, cube bool) (scene, error) {
	target := a.cfg.TargetOr(math3d.Zero3())

	if len(args) == 0 {
		if cube {
			return scene{mesh: models.NewCube(2), eye: a.cfg.EyeOr(cubeEye), target: target}, nil
		}
		return scene{mesh: models.DemoQuads(), eye: a.cfg.EyeOr(models.DemoEye), target: target}, nil
	}

	mesh, err := models.LoadGLTF(args[0])
	if err != nil {
		return scene{}, fmt.Errorf("load model: %w", err)
	}
	a.log.Info("loaded model", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	return scene{mesh: mesh.Normalized(), eye: a.cfg.EyeOr(modelEye), target: target}, nil
}

// drawFrame clears pb to the background and draws the scene from cam.
func (a *app) drawFrame(pb *render.PixelBuffer, s scene, cam *render.Camera, wireframe, cull bool) (render.Stats, error) {
	bg, err := a.cfg.BackgroundColour()
	if err != nil {
		return render.Stats{}, err
	}
	proj, err := a.cfg.Perspective(pb.Width, pb.Height)
	if err != nil {
		return render.Stats{}, err
	}

	pb.Clear(bg)
	pb.DisableBackfaceCulling = !cull
	stats, err := pb.DrawMesh(s.mesh, cam, proj)
	if err != nil {
		return stats, err
	}
	if wireframe {
		if err := pb.DrawMeshWireframe(s.mesh, cam, proj, wireColour); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
