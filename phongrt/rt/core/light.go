package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the size of the point light array in the lighting shader.
const MaxPointLights = 4

const (
	DefaultConstant  float32 = 1.0
	DefaultLinear    float32 = 0.09
	DefaultQuadratic float32 = 0.032
)

// DirectionalLight shines along Direction with no attenuation, like the sun.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
		Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
		Specular:  mgl32.Vec3{0.7, 0.7, 0.7},
	}
}

// PointLight is an omnidirectional light whose intensity falls off with
// 1 / (Constant + Linear*d + Quadratic*d^2).
type PointLight struct {
	Position  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

func NewPointLight(position, ambient, diffuse, specular mgl32.Vec3) PointLight {
	return PointLight{
		Position:  position,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Constant:  DefaultConstant,
		Linear:    DefaultLinear,
		Quadratic: DefaultQuadratic,
	}
}

// Attenuation returns the light's intensity factor at distance d.
func (l PointLight) Attenuation(d float32) float32 {
	return 1 / (l.Constant + l.Linear*d + l.Quadratic*d*d)
}

// SpotLight is a cone light. CutOff and OuterCutOff hold cosines; the edge
// fades between them.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Constant    float32
	Linear      float32
	Quadratic   float32
}

func DefaultSpotLight() SpotLight {
	return SpotLight{
		Direction:   mgl32.Vec3{0, 0, -1},
		CutOff:      math32.Cos(mgl32.DegToRad(12.5)),
		OuterCutOff: math32.Cos(mgl32.DegToRad(17.5)),
		Ambient:     mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:     mgl32.Vec3{1, 1, 1},
		Specular:    mgl32.Vec3{1, 1, 1},
		Constant:    DefaultConstant,
		Linear:      DefaultLinear,
		Quadratic:   DefaultQuadratic,
	}
}

// Lighting is the full set of lights fed to the shading stage.
type Lighting struct {
	Directional DirectionalLight
	Points      []PointLight
	Spot        SpotLight
	SpotEnabled bool
}

// Effective returns the lighting to shade with. With lighting disabled the
// scene keeps only a flat grey ambient term so geometry stays visible.
func (l Lighting) Effective(enabled bool) Lighting {
	if enabled {
		out := l
		if len(out.Points) > MaxPointLights {
			out.Points = out.Points[:MaxPointLights]
		}
		return out
	}
	return Lighting{
		Directional: DirectionalLight{
			Direction: l.Directional.Direction,
			Ambient:   mgl32.Vec3{0.3, 0.3, 0.3},
		},
	}
}

// DemoLighting is a dim blue-ish sun plus red, blue and green point lights.
func DemoLighting() Lighting {
	return Lighting{
		Directional: DirectionalLight{
			Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.15},
			Diffuse:   mgl32.Vec3{0.4, 0.4, 0.5},
			Specular:  mgl32.Vec3{0.6, 0.6, 0.7},
		},
		Points: []PointLight{
			NewPointLight(
				mgl32.Vec3{3, 2, 3},
				mgl32.Vec3{0.15, 0.05, 0.05},
				mgl32.Vec3{0.8, 0.2, 0.2},
				mgl32.Vec3{1.0, 0.3, 0.3},
			),
			NewPointLight(
				mgl32.Vec3{-3, 2, 3},
				mgl32.Vec3{0.05, 0.05, 0.15},
				mgl32.Vec3{0.2, 0.2, 0.8},
				mgl32.Vec3{0.3, 0.3, 1.0},
			),
			NewPointLight(
				mgl32.Vec3{0, 3, -3},
				mgl32.Vec3{0.05, 0.15, 0.05},
				mgl32.Vec3{0.2, 0.8, 0.2},
				mgl32.Vec3{0.3, 1.0, 0.3},
			),
		},
		Spot: DefaultSpotLight(),
	}
}
