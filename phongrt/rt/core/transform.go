package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) WithPosition(p mgl32.Vec3) Transform {
	t.Position = p
	return t
}

// Rotate appends a rotation of degrees about axis, applied before the
// existing rotation (object space).
func (t Transform) Rotate(degrees float32, axis mgl32.Vec3) Transform {
	t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize()))
	return t
}

func (t Transform) WithUniformScale(s float32) Transform {
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// NormalMatrix maps object-space normals to world space.
func (t Transform) NormalMatrix() mgl32.Mat4 {
	return t.WorldToObject().Transpose()
}
