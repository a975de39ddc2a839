package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestCamera_DefaultBasis(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{0, 2, 8})

	assert.Equal(t, DefaultYaw, c.Yaw())
	assert.Equal(t, DefaultPitch, c.Pitch())
	assert.Equal(t, DefaultZoom, c.FOV())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestCamera_MoveForward(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	c.Move(Forward, 1.0)
	assertVec3(t, mgl32.Vec3{0, 2, 5.5}, c.Position)
}

func TestCamera_MoveDirections(t *testing.T) {
	tests := []struct {
		dir  CameraMovement
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2.5}},
		{Backward, mgl32.Vec3{0, 0, 2.5}},
		{Left, mgl32.Vec3{-2.5, 0, 0}},
		{Right, mgl32.Vec3{2.5, 0, 0}},
		{Up, mgl32.Vec3{0, 2.5, 0}},
		{Down, mgl32.Vec3{0, -2.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := NewDefaultCamera(mgl32.Vec3{})
			c.Move(tt.dir, 1)
			assertVec3(t, tt.want, c.Position)
		})
	}
}

func TestCamera_UpMovementIsCameraRelative(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	c.SetOrientation(-90, 45)
	c.Move(Up, 1)

	// Looking up 45 degrees tilts camera up towards +Z.
	assert.Greater(t, c.Position.Z(), float32(0))
	assert.InDelta(t, 2.5, c.Position.Len(), eps)
}

func TestCamera_BasisOrthonormal(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	for yaw := float32(-720); yaw <= 720; yaw += 37.5 {
		for pitch := float32(-89); pitch <= 89; pitch += 8.9 {
			c.SetOrientation(yaw, pitch)
			f, r, u := c.Front(), c.Right(), c.Up()

			assert.InDelta(t, 1, f.Len(), eps)
			assert.InDelta(t, 1, r.Len(), eps)
			assert.InDelta(t, 1, u.Len(), eps)
			assert.InDelta(t, 0, f.Dot(r), eps)
			assert.InDelta(t, 0, f.Dot(u), eps)
			assert.InDelta(t, 0, r.Dot(u), eps)
			// right-handed: right x up = -front
			assertVec3(t, f.Mul(-1), r.Cross(u))
		}
	}
}

func TestCamera_LookClampsPitch(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	for i := 0; i < 50; i++ {
		c.Look(0, 100, true)
		assert.LessOrEqual(t, c.Pitch(), PitchLimit)
	}
	assert.Equal(t, PitchLimit, c.Pitch())

	for i := 0; i < 50; i++ {
		c.Look(0, -100, true)
		assert.GreaterOrEqual(t, c.Pitch(), -PitchLimit)
	}
	assert.Equal(t, -PitchLimit, c.Pitch())
}

func TestNewCamera_ClampsPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, -90, 120)
	assert.Equal(t, PitchLimit, c.Pitch())
	// still facing -Z, not flipped over the pole
	assert.Less(t, c.Front().Y(), float32(1))
	assert.Less(t, c.Front().Z(), float32(0))
	assert.InDelta(t, 1, c.Up().Len(), eps)

	c = NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, -90, -120)
	assert.Equal(t, -PitchLimit, c.Pitch())
}

func TestCamera_SetOrientationClampsPitch(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	c.SetOrientation(-90, 95)
	assert.Equal(t, PitchLimit, c.Pitch())
	assert.Less(t, c.Front().Z(), float32(0))

	c.SetOrientation(-90, -95)
	assert.Equal(t, -PitchLimit, c.Pitch())
}

func TestCamera_LookUnclamped(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	c.Look(0, 1000, false)
	assert.InDelta(t, 100, c.Pitch(), eps)
}

func TestCamera_LookYawAccumulates(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	c.Look(3600, 0, true)
	assert.InDelta(t, 270, c.Yaw(), eps)
	// -90 + 360: facing the same way as the default.
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
}

func TestCamera_ZoomSaturates(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{})
	for i := 0; i < 100; i++ {
		c.Zoom(1)
	}
	assert.Equal(t, MinZoom, c.FOV())
	c.Zoom(5)
	assert.Equal(t, MinZoom, c.FOV())

	for i := 0; i < 100; i++ {
		c.Zoom(-1)
	}
	assert.Equal(t, MaxZoom, c.FOV())

	c.Zoom(10)
	assert.Equal(t, float32(35), c.FOV())

	c.SetFOV(90)
	assert.Equal(t, MaxZoom, c.FOV())
}

func TestCamera_ViewMatrix(t *testing.T) {
	c := NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	view := c.ViewMatrix()

	// The camera position maps to the view-space origin.
	p := view.Mul4x1(c.Position.Vec4(1))
	assertVec3(t, mgl32.Vec3{}, p.Vec3())

	// A point straight ahead lies on -Z in view space.
	ahead := view.Mul4x1(c.Position.Add(c.Front().Mul(3)).Vec4(1))
	assertVec3(t, mgl32.Vec3{0, 0, -3}, ahead.Vec3())
}

func TestCameraMovement_String(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "unknown", CameraMovement(42).String())
}
