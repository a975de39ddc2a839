package phongdemo

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/phongdemo/phongrt/rt/core"
)

// FlyingCameraModule provides a *core.Camera resource steered by the keyboard,
// mouse and scroll wheel. Yaw and Pitch are used as given, so a zero Yaw faces
// +X. Zero Speed, Sensitivity or FOV keep the camera defaults.
type FlyingCameraModule struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Speed       float32
	Sensitivity float32
	FOV         float32
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewCamera(m.Position, mgl32.Vec3{0, 1, 0}, m.Yaw, m.Pitch)
	if m.Speed > 0 {
		cam.Speed = m.Speed
	}
	if m.Sensitivity > 0 {
		cam.Sensitivity = m.Sensitivity
	}
	if m.FOV > 0 {
		cam.SetFOV(m.FOV)
	}
	cmd.AddResources(cam)

	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

var moveKeys = []struct {
	key int
	dir core.CameraMovement
}{
	{KeyW, core.Forward},
	{KeyS, core.Backward},
	{KeyA, core.Left},
	{KeyD, core.Right},
	{KeySpace, core.Up},
	{KeyShift, core.Down},
}

func flyingCameraSystem(input *Input, cam *core.Camera, t *Time) {
	steerCamera(input, cam, t.Seconds())
}

// steerCamera maps one frame of input onto the camera. Screen Y grows
// downwards, so the vertical mouse delta is inverted before Look.
func steerCamera(input *Input, cam *core.Camera, dt float32) {
	if input.JustPressed[KeyTab] {
		input.SetCaptured(!input.MouseCaptured)
	}

	for _, mk := range moveKeys {
		if input.Pressed[mk.key] {
			cam.Move(mk.dir, dt)
		}
	}

	if input.MouseCaptured && (input.MouseDeltaX != 0 || input.MouseDeltaY != 0) {
		cam.Look(float32(input.MouseDeltaX), float32(-input.MouseDeltaY), true)
	}

	if input.ScrollY != 0 {
		cam.Zoom(float32(input.ScrollY))
	}
}
