package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material holds Phong reflectance colours and the specular exponent.
type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

func NewMaterial(ambient, diffuse, specular mgl32.Vec3, shininess float32) Material {
	return Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// DefaultMaterial is a mid grey with moderate shine (shininess 32).
func DefaultMaterial() Material {
	return NewMaterial(
		mgl32.Vec3{0.2, 0.2, 0.2},
		mgl32.Vec3{0.8, 0.8, 0.8},
		mgl32.Vec3{0.5, 0.5, 0.5},
		32,
	)
}

func StandardMaterial() Material {
	return NewMaterial(
		mgl32.Vec3{0.2, 0.2, 0.25},
		mgl32.Vec3{0.7, 0.7, 0.8},
		mgl32.Vec3{0.8, 0.8, 0.9},
		64,
	)
}

func MetallicMaterial() Material {
	return NewMaterial(
		mgl32.Vec3{0.25, 0.25, 0.25},
		mgl32.Vec3{0.4, 0.4, 0.4},
		mgl32.Vec3{0.95, 0.95, 0.95},
		128,
	)
}

func PlasticMaterial() Material {
	return NewMaterial(
		mgl32.Vec3{0.2, 0.15, 0.1},
		mgl32.Vec3{0.8, 0.6, 0.4},
		mgl32.Vec3{0.3, 0.3, 0.3},
		16,
	)
}
