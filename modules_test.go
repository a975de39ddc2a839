package phongdemo

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/phongdemo/phongrt/rt/core"
)

const eps = 1e-4

type fakeSource struct {
	keys map[glfw.Key]glfw.Action
	x, y float64
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: make(map[glfw.Key]glfw.Action)}
}

func (f *fakeSource) GetKey(key glfw.Key) glfw.Action  { return f.keys[key] }
func (f *fakeSource) GetCursorPos() (float64, float64) { return f.x, f.y }

func TestTime(t *testing.T) {
	start := time.Now()
	tm := &Time{Time: start}
	tm.advance(start.Add(500 * time.Millisecond))

	assert.Equal(t, 500*time.Millisecond, tm.Dt)
	assert.InDelta(t, 0.5, tm.Seconds(), eps)
}

func TestInput_KeyEdges(t *testing.T) {
	src := newFakeSource()
	input := &Input{}

	src.keys[glfw.KeyW] = glfw.Press
	input.poll(src, 0)
	assert.True(t, input.Pressed[KeyW])
	assert.True(t, input.JustPressed[KeyW])

	input.poll(src, 0)
	assert.True(t, input.Pressed[KeyW])
	assert.False(t, input.JustPressed[KeyW], "held key is not a new press")

	src.keys[glfw.KeyW] = glfw.Release
	input.poll(src, 0)
	assert.False(t, input.Pressed[KeyW])
	assert.True(t, input.JustReleased[KeyW])

	input.poll(src, 0)
	assert.False(t, input.JustReleased[KeyW])
}

func TestInput_MouseDelta(t *testing.T) {
	src := newFakeSource()
	input := &Input{MouseCaptured: true}

	src.x, src.y = 100, 100
	input.poll(src, 0)
	assert.Zero(t, input.MouseDeltaX, "first sample only sets the reference")
	assert.Zero(t, input.MouseDeltaY)

	src.x, src.y = 110, 95
	input.poll(src, 1.5)
	assert.Equal(t, 10.0, input.MouseDeltaX)
	assert.Equal(t, -5.0, input.MouseDeltaY)
	assert.Equal(t, 1.5, input.ScrollY)

	input.SetCaptured(false)
	src.x = 200
	input.poll(src, 0)
	assert.Zero(t, input.MouseDeltaX, "no look while released")

	input.SetCaptured(true)
	src.x = 300
	input.poll(src, 0)
	assert.Zero(t, input.MouseDeltaX, "first sample after capture is suppressed")

	src.x = 303
	input.poll(src, 0)
	assert.Equal(t, 3.0, input.MouseDeltaX)
}

func TestWindowState_Takes(t *testing.T) {
	ws := &WindowState{}
	ws.scrollY = 2
	assert.Equal(t, 2.0, ws.takeScroll())
	assert.Zero(t, ws.takeScroll())

	_, _, ok := ws.takeResize()
	assert.False(t, ok)

	ws.WindowWidth, ws.WindowHeight, ws.resized = 640, 480, true
	w, h, ok := ws.takeResize()
	assert.True(t, ok)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	_, _, ok = ws.takeResize()
	assert.False(t, ok)
}

func TestSteerCamera_Move(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	input := &Input{}
	input.Pressed[KeyW] = true

	steerCamera(input, cam, 1)

	assert.InDelta(t, 0, cam.Position.X(), eps)
	assert.InDelta(t, 2, cam.Position.Y(), eps)
	assert.InDelta(t, 5.5, cam.Position.Z(), eps)
}

func TestSteerCamera_OpposingKeysCancel(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	input := &Input{}
	input.Pressed[KeyA] = true
	input.Pressed[KeyD] = true
	input.Pressed[KeySpace] = true
	input.Pressed[KeyShift] = true

	steerCamera(input, cam, 0.5)

	assert.InDelta(t, 0, cam.Position.X(), eps)
	assert.InDelta(t, 2, cam.Position.Y(), eps)
	assert.InDelta(t, 8, cam.Position.Z(), eps)
}

func TestSteerCamera_LookAndZoom(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{})
	input := &Input{MouseCaptured: true, MouseDeltaX: 20, MouseDeltaY: -10, ScrollY: 2}

	steerCamera(input, cam, 0)

	assert.InDelta(t, -88, cam.Yaw(), eps)
	assert.InDelta(t, 1, cam.Pitch(), eps, "mouse up looks up")
	assert.InDelta(t, 43, cam.FOV(), eps)
}

func TestSteerCamera_PitchClamped(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{})
	input := &Input{MouseCaptured: true, MouseDeltaY: -5000}

	steerCamera(input, cam, 0)
	assert.InDelta(t, 89, cam.Pitch(), eps)
}

func TestSteerCamera_TabTogglesCapture(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{})
	input := &Input{MouseCaptured: true}
	input.JustPressed[KeyTab] = true

	steerCamera(input, cam, 0)
	assert.False(t, input.MouseCaptured)
	steerCamera(input, cam, 0)
	assert.True(t, input.MouseCaptured)

	input.JustPressed[KeyTab] = false
	input.MouseCaptured = false
	input.MouseDeltaX = 50
	steerCamera(input, cam, 0)
	assert.InDelta(t, -90, cam.Yaw(), eps, "no look while released")
}

func TestFlyingCameraModule(t *testing.T) {
	app := NewAppBuilder().UseModule(FlyingCameraModule{
		Position: mgl32.Vec3{1, 2, 3},
		Speed:    4,
		FOV:      30,
	}).Build()

	cam, ok := Resource[core.Camera](app)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
	assert.Equal(t, float32(0), cam.Yaw())
	assert.InDelta(t, 1, cam.Front().X(), eps)
	assert.InDelta(t, 0, cam.Front().Z(), eps)
	assert.Equal(t, float32(4), cam.Speed)
	assert.Equal(t, core.DefaultSensitivity, cam.Sensitivity)
	assert.Equal(t, float32(30), cam.FOV())
}

func TestFlyingCameraModule_ConfigYaw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Yaw = 0
	require.NoError(t, cfg.Validate())

	mod, ok := cfg.Modules()[4].(FlyingCameraModule)
	require.True(t, ok)
	app := NewAppBuilder().UseModule(mod).Build()
	cam, ok := Resource[core.Camera](app)
	require.True(t, ok)
	assert.Equal(t, float32(0), cam.Yaw())
	assert.InDelta(t, 1, cam.Front().X(), eps)
}

func TestInput_EveryKeyMapped(t *testing.T) {
	assert.Len(t, keyToGlfw, keyCount)
	for k := 0; k < keyCount; k++ {
		_, ok := keyToGlfw[k]
		assert.True(t, ok, "key %d has no glfw binding", k)
	}
}

func TestDisplayToggles_OnPressEdgeOnly(t *testing.T) {
	app := NewAppBuilder().Build()
	src := newFakeSource()
	input := &Input{}
	modes := &DisplayModes{Lighting: true}

	src.keys[glfw.KeyF] = glfw.Press
	for i := 0; i < 3; i++ {
		input.poll(src, 0)
		displaySystem(input, modes, app.Commands())
	}
	assert.True(t, modes.Wireframe, "held key toggles once")

	src.keys[glfw.KeyF] = glfw.Release
	input.poll(src, 0)
	displaySystem(input, modes, app.Commands())
	assert.True(t, modes.Wireframe, "release does not toggle")

	src.keys[glfw.KeyF] = glfw.Press
	src.keys[glfw.KeyL] = glfw.Press
	src.keys[glfw.KeyT] = glfw.Press
	src.keys[glfw.KeyH] = glfw.Press
	input.poll(src, 0)
	displaySystem(input, modes, app.Commands())

	assert.Equal(t, DisplayModes{Wireframe: false, Lighting: false, Flashlight: true, HUD: true}, *modes)
}

func TestMeshDef_Generate(t *testing.T) {
	tests := []struct {
		def      MeshDef
		vertices int
		indices  int
	}{
		{MeshDef{Name: "cube", Type: "cube", Params: []float32{1}}, 24, 36},
		{MeshDef{Name: "sphere", Type: "sphere", Params: []float32{0.8, 36, 18}}, 37 * 19, 6 * 36 * 17},
		{MeshDef{Name: "plane", Type: "plane", Params: []float32{20, 20, 20, 20}}, 21 * 21, 20 * 20 * 6},
		{MeshDef{Name: "unit plane", Type: "plane"}, 4, 6},
	}
	for _, tt := range tests {
		t.Run(tt.def.Name, func(t *testing.T) {
			data, err := tt.def.Generate()
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, data.VertexCount())
			assert.Equal(t, tt.indices, data.IndexCount())
		})
	}

	_, err := MeshDef{Name: "x", Type: "torus"}.Generate()
	assert.Error(t, err)
}

func TestSceneModule(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{}, SceneModule{}).Build()

	server, ok := Resource[AssetServer](app)
	require.True(t, ok)
	assert.Len(t, server.MeshIds(), 3)
	for _, name := range []string{core.MeshCube, core.MeshSphere, core.MeshPlane} {
		_, ok := server.MeshId(name)
		assert.True(t, ok, name)
	}

	lighting, ok := Resource[core.Lighting](app)
	require.True(t, ok)
	assert.Len(t, lighting.Points, 3)

	scene, ok := Resource[core.Scene](app)
	require.True(t, ok)
	sceneSystem(scene, &Time{Dt: time.Second})
	assert.InDelta(t, core.RotationSpeed, scene.Rotation, eps)
}

func TestBuildFrame(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	scene := core.NewScene()
	lighting := core.DemoLighting()
	modes := DisplayModes{Lighting: true}

	f := buildFrame(cam, scene, lighting, modes, 16.0/9.0, 0.1, 100)

	assert.Equal(t, cam.ViewMatrix(), f.View)
	assert.True(t, f.Projection.ApproxEqualThreshold(mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 100), eps))
	assert.Equal(t, cam.Position, f.ViewPos)
	assert.Len(t, f.Objects, 2+core.OrbitCount)
	assert.Len(t, f.Markers, 3)
	assert.Len(t, f.Lights.Points, 3)
	assert.False(t, f.Lights.SpotEnabled)
	assert.False(t, f.Wireframe)
}

func TestBuildFrame_Flashlight(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{1, 2, 3})
	cam.Look(100, 0, true)
	lighting := core.DemoLighting()

	f := buildFrame(cam, core.NewScene(), lighting, DisplayModes{Lighting: true, Flashlight: true, Wireframe: true}, 1, 0.1, 100)

	assert.True(t, f.Lights.SpotEnabled)
	assert.Equal(t, cam.Position, f.Lights.Spot.Position)
	assert.Equal(t, cam.Front(), f.Lights.Spot.Direction)
	assert.True(t, f.Wireframe)
	assert.False(t, lighting.SpotEnabled, "resource lighting is not modified")
}

func TestBuildFrame_LightingOff(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{})
	f := buildFrame(cam, core.NewScene(), core.DemoLighting(), DisplayModes{Flashlight: true}, 1, 0.1, 100)

	assert.Empty(t, f.Lights.Points)
	assert.False(t, f.Lights.SpotEnabled)
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, f.Lights.Directional.Ambient)
	assert.Len(t, f.Markers, 3, "markers stay visible")
}

func TestHudLines(t *testing.T) {
	cam := core.NewDefaultCamera(mgl32.Vec3{0, 2, 8})
	lines := hudLines(DisplayModes{Lighting: true, Flashlight: true}, cam, 59.6)

	require.Len(t, lines, 3)
	assert.Equal(t, "FPS: 60", lines[0])
	assert.Contains(t, lines[1], "Pos: (0.0, 2.0, 8.0)")
	assert.Equal(t, "[F] wireframe: off  [L] lighting: on  [T] flashlight: on", lines[2])
}

func TestEnsureSingleRenderer(t *testing.T) {
	app := newApp()
	ensureSingleRenderer(app, RendererPhong)
	ensureSingleRenderer(app, RendererPhong)

	tag, ok := Resource[RendererTag](app)
	require.True(t, ok)
	assert.Equal(t, RendererPhong, tag.Name)

	require.PanicsWithValue(t, "Multiple renderers installed: phong and other", func() {
		ensureSingleRenderer(app, "other")
	})
}
