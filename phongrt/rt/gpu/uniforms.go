package gpu

import (
	"github.com/gekko3d/phongdemo/phongrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform structs mirror the WGSL structs in the shaders package. A vec3 is
// 16-byte aligned in WGSL, so every Vec3 is followed by a scalar or padding.

const (
	CameraUniformSize = 144
	ObjectUniformSize = 192
	LightsUniformSize = 416
)

type CameraUniform struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewPos    mgl32.Vec3
	_          float32
}

type ObjectUniform struct {
	Model     mgl32.Mat4
	NormalMat mgl32.Mat4
	Ambient   mgl32.Vec3
	Shininess float32
	Diffuse   mgl32.Vec3
	_         float32
	Specular  mgl32.Vec3
	_         float32
	Color     mgl32.Vec4
}

type DirLightUniform struct {
	Direction mgl32.Vec3
	_         float32
	Ambient   mgl32.Vec3
	_         float32
	Diffuse   mgl32.Vec3
	_         float32
	Specular  mgl32.Vec3
	_         float32
}

type PointLightUniform struct {
	Position  mgl32.Vec3
	Constant  float32
	Ambient   mgl32.Vec3
	Linear    float32
	Diffuse   mgl32.Vec3
	Quadratic float32
	Specular  mgl32.Vec3
	_         float32
}

type SpotLightUniform struct {
	Position    mgl32.Vec3
	CutOff      float32
	Direction   mgl32.Vec3
	OuterCutOff float32
	Ambient     mgl32.Vec3
	Constant    float32
	Diffuse     mgl32.Vec3
	Linear      float32
	Specular    mgl32.Vec3
	Quadratic   float32
}

type LightsUniform struct {
	Directional DirLightUniform
	Points      [core.MaxPointLights]PointLightUniform
	Spot        SpotLightUniform
	NumPoints   uint32
	SpotEnabled uint32
	_           [2]uint32
}

func NewCameraUniform(view, projection mgl32.Mat4, viewPos mgl32.Vec3) CameraUniform {
	return CameraUniform{View: view, Projection: projection, ViewPos: viewPos}
}

func NewObjectUniform(model, normal mgl32.Mat4, m core.Material, color mgl32.Vec4) ObjectUniform {
	return ObjectUniform{
		Model:     model,
		NormalMat: normal,
		Ambient:   m.Ambient,
		Shininess: m.Shininess,
		Diffuse:   m.Diffuse,
		Specular:  m.Specular,
		Color:     color,
	}
}

// PackLights converts lighting into its uniform form. Point lights beyond
// MaxPointLights are dropped.
func PackLights(l core.Lighting) LightsUniform {
	u := LightsUniform{
		Directional: DirLightUniform{
			Direction: l.Directional.Direction,
			Ambient:   l.Directional.Ambient,
			Diffuse:   l.Directional.Diffuse,
			Specular:  l.Directional.Specular,
		},
		Spot: SpotLightUniform{
			Position:    l.Spot.Position,
			CutOff:      l.Spot.CutOff,
			Direction:   l.Spot.Direction,
			OuterCutOff: l.Spot.OuterCutOff,
			Ambient:     l.Spot.Ambient,
			Constant:    l.Spot.Constant,
			Diffuse:     l.Spot.Diffuse,
			Linear:      l.Spot.Linear,
			Specular:    l.Spot.Specular,
			Quadratic:   l.Spot.Quadratic,
		},
	}
	if l.SpotEnabled {
		u.SpotEnabled = 1
	}
	for i, p := range l.Points {
		if i == core.MaxPointLights {
			break
		}
		u.Points[i] = PointLightUniform{
			Position:  p.Position,
			Constant:  p.Constant,
			Ambient:   p.Ambient,
			Linear:    p.Linear,
			Diffuse:   p.Diffuse,
			Quadratic: p.Quadratic,
			Specular:  p.Specular,
		}
		u.NumPoints++
	}
	return u
}
