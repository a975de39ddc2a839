package phongdemo

import (
	"fmt"

	"github.com/gekko3d/phongdemo/phongrt/rt/core"
	"github.com/gekko3d/phongdemo/phongrt/rt/geom"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Meshes   []MeshDef
	Lighting core.Lighting
}

// MeshDef is a procedural mesh to generate at startup.
type MeshDef struct {
	Name   string
	Type   string // "cube", "sphere", "plane"
	Params []float32
}

// DemoSceneDef is the cube, sphere and ground plane lit by three coloured
// point lights.
func DemoSceneDef() SceneDef {
	return SceneDef{
		Meshes: []MeshDef{
			{Name: core.MeshCube, Type: "cube", Params: []float32{1}},
			{Name: core.MeshSphere, Type: "sphere", Params: []float32{0.8, 36, 18}},
			{Name: core.MeshPlane, Type: "plane", Params: []float32{20, 20, 20, 20}},
		},
		Lighting: core.DemoLighting(),
	}
}

func (d MeshDef) param(i int, def float32) float32 {
	if i < len(d.Params) {
		return d.Params[i]
	}
	return def
}

// Generate builds the mesh data. Missing params fall back to unit sizes.
func (d MeshDef) Generate() (geom.MeshData, error) {
	switch d.Type {
	case "cube":
		return geom.GenerateCube(d.param(0, 1)), nil
	case "sphere":
		return geom.GenerateSphere(d.param(0, 1), int(d.param(1, 36)), int(d.param(2, 18))), nil
	case "plane":
		return geom.GeneratePlane(d.param(0, 1), d.param(1, 1), int(d.param(2, 1)), int(d.param(3, 1))), nil
	}
	return geom.MeshData{}, fmt.Errorf("mesh %q: unknown type %q", d.Name, d.Type)
}

// SceneModule loads the scene meshes into the AssetServer and provides the
// animated *core.Scene and the *core.Lighting resources.
type SceneModule struct {
	Def *SceneDef
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	def := DemoSceneDef()
	if m.Def != nil {
		def = *m.Def
	}

	AssetServerModule{}.Install(app, cmd)
	server, _ := Resource[AssetServer](app)
	for _, md := range def.Meshes {
		data, err := md.Generate()
		if err == nil {
			_, err = server.LoadMesh(md.Name, data)
		}
		if err != nil {
			app.Logger().Errorf("scene: %v", err)
			panic(err)
		}
		app.Logger().Debugf("scene: mesh %s (%d vertices, %d indices)", md.Name, data.VertexCount(), data.IndexCount())
	}

	lighting := def.Lighting
	cmd.AddResources(core.NewScene(), &lighting)

	app.UseSystem(
		System(sceneSystem).
			InStage(Update).
			RunAlways(),
	)
}

func sceneSystem(scene *core.Scene, t *Time) {
	scene.Advance(t.Seconds())
}
