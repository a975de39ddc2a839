package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
	Up
	Down
)

func (m CameraMovement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	PitchLimit float32 = 89
	MinZoom    float32 = 1
	MaxZoom    float32 = 45
)

// Camera is an Euler-angle fly camera. The front/right/up basis is derived
// from yaw, pitch and the world up axis after every orientation change.
type Camera struct {
	Position    mgl32.Vec3
	Speed       float32
	Sensitivity float32

	worldUp mgl32.Vec3
	yaw     float32
	pitch   float32
	zoom    float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewCamera creates a camera at position looking along the direction given by
// yaw and pitch (degrees). Pitch is clamped to ±PitchLimit. worldUp must be a
// unit vector and stays fixed for the lifetime of the camera.
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		worldUp:     worldUp,
		yaw:         yaw,
		pitch:       mgl32.Clamp(pitch, -PitchLimit, PitchLimit),
		zoom:        DefaultZoom,
	}
	c.updateVectors()
	return c
}

// NewDefaultCamera creates a Y-up camera looking down -Z.
func NewDefaultCamera(position mgl32.Vec3) *Camera {
	return NewCamera(position, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch)
}

func (c *Camera) Yaw() float32           { return c.yaw }
func (c *Camera) Pitch() float32         { return c.pitch }
func (c *Camera) WorldUp() mgl32.Vec3    { return c.worldUp }
func (c *Camera) Front() mgl32.Vec3      { return c.front }
func (c *Camera) Right() mgl32.Vec3      { return c.right }
func (c *Camera) Up() mgl32.Vec3         { return c.up }
func (c *Camera) FOV() float32           { return c.zoom }
func (c *Camera) ViewMatrix() mgl32.Mat4 { return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up) }

// Move translates the camera along its own basis by Speed*dt.
func (c *Camera) Move(dir CameraMovement, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.up.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.up.Mul(velocity))
	}
}

// Look applies a pointer delta. Yaw accumulates without wrapping.
func (c *Camera) Look(dx, dy float32, clampPitch bool) {
	c.yaw += dx * c.Sensitivity
	c.pitch += dy * c.Sensitivity

	if clampPitch {
		c.pitch = mgl32.Clamp(c.pitch, -PitchLimit, PitchLimit)
	}
	c.updateVectors()
}

// SetOrientation replaces yaw and pitch (degrees). Pitch is clamped to
// ±PitchLimit.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -PitchLimit, PitchLimit)
	c.updateVectors()
}

// Zoom narrows the field of view by delta degrees.
func (c *Camera) Zoom(delta float32) {
	c.SetFOV(c.zoom - delta)
}

func (c *Camera) SetFOV(degrees float32) {
	c.zoom = mgl32.Clamp(degrees, MinZoom, MaxZoom)
}

// updateVectors is undefined when front ends up parallel to worldUp; the
// pitch clamp keeps the default Y-up camera away from that case.
func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
