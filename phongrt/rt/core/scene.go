package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh keys used by the demo scene.
const (
	MeshCube   = "cube"
	MeshSphere = "sphere"
	MeshPlane  = "plane"
)

const (
	// RotationSpeed is the scene animation rate in degrees per second.
	RotationSpeed float32 = 20

	OrbitRadius float32 = 3.5
	OrbitCount          = 4
	MarkerScale float32 = 0.15
)

// SceneObject is one draw: which mesh, where, and how it reflects light.
type SceneObject struct {
	Mesh     string
	Model    mgl32.Mat4
	Normal   mgl32.Mat4
	Material Material
	Color    mgl32.Vec4
}

// Marker is an unlit cube drawn at a light position.
type Marker struct {
	Mesh  string
	Model mgl32.Mat4
	Color mgl32.Vec4
}

// Scene animates a ground plane, a spinning cube and spheres orbiting it.
type Scene struct {
	Rotation float32 // degrees, unbounded

	PlaneMaterial  Material
	CubeMaterial   Material
	SphereMaterial Material
}

func NewScene() *Scene {
	return &Scene{
		PlaneMaterial:  PlasticMaterial(),
		CubeMaterial:   MetallicMaterial(),
		SphereMaterial: StandardMaterial(),
	}
}

// Advance moves the animation forward by dt seconds.
func (s *Scene) Advance(dt float32) {
	s.Rotation += RotationSpeed * dt
}

func newObject(mesh string, t Transform, m Material) SceneObject {
	return SceneObject{
		Mesh:     mesh,
		Model:    t.ObjectToWorld(),
		Normal:   t.NormalMatrix(),
		Material: m,
		Color:    mgl32.Vec4{1, 1, 1, 1},
	}
}

// OrbitPosition returns the centre of sphere i at the current rotation.
func (s *Scene) OrbitPosition(i int) mgl32.Vec3 {
	angle := mgl32.DegToRad(float32(i)*90 + s.Rotation*0.3)
	bob := mgl32.DegToRad(s.Rotation*2 + float32(i)*45)
	return mgl32.Vec3{
		OrbitRadius * math32.Cos(angle),
		0.5 + 0.3*math32.Sin(bob),
		OrbitRadius * math32.Sin(angle),
	}
}

// Objects returns the lit draws for the current frame: plane, cube, spheres.
func (s *Scene) Objects() []SceneObject {
	objs := make([]SceneObject, 0, 2+OrbitCount)

	plane := NewTransform().WithPosition(mgl32.Vec3{0, -1, 0})
	objs = append(objs, newObject(MeshPlane, plane, s.PlaneMaterial))

	cube := NewTransform().
		WithPosition(mgl32.Vec3{0, 1, 0}).
		Rotate(s.Rotation, mgl32.Vec3{0, 1, 0}).
		Rotate(s.Rotation*0.5, mgl32.Vec3{1, 0, 0})
	objs = append(objs, newObject(MeshCube, cube, s.CubeMaterial))

	for i := 0; i < OrbitCount; i++ {
		sphere := NewTransform().
			WithPosition(s.OrbitPosition(i)).
			Rotate(s.Rotation, mgl32.Vec3{1, 1, 0})
		objs = append(objs, newObject(MeshSphere, sphere, s.SphereMaterial))
	}
	return objs
}

// Markers returns one small cube per point light, tinted with its diffuse colour.
func (s *Scene) Markers(lights []PointLight) []Marker {
	out := make([]Marker, 0, len(lights))
	for _, l := range lights {
		t := NewTransform().WithPosition(l.Position).WithUniformScale(MarkerScale)
		out = append(out, Marker{
			Mesh:  MeshCube,
			Model: t.ObjectToWorld(),
			Color: l.Diffuse.Vec4(1),
		})
	}
	return out
}
