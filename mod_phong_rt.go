package phongdemo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	app_rt "github.com/gekko3d/phongdemo/phongrt/rt/app"
	"github.com/gekko3d/phongdemo/phongrt/rt/core"
	"github.com/gekko3d/phongdemo/phongrt/rt/shaders"
)

const (
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100
)

type PhongRtModule struct {
	ShaderDir  string
	HotReload  bool
	VSync      bool
	ClearColor [4]float64
	Near       float32
	Far        float32
	FontSize   float64
}

type PhongRtState struct {
	RtApp *app_rt.App

	meshes  *meshSync
	watcher *shaders.Watcher
	near    float32
	far     float32
}

func (mod PhongRtModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererPhong)
	log := app.Logger()

	ws, ok := Resource[WindowState](app)
	if !ok {
		NewPlatformWindow(0, 0, "").Install(app, cmd)
		ws, _ = Resource[WindowState](app)
	}

	rtApp := app_rt.NewApp(ws.windowGlfw, app_rt.Options{
		ShaderDir:  mod.ShaderDir,
		VSync:      mod.VSync,
		ClearColor: mod.ClearColor,
		FontSize:   mod.FontSize,
	})
	if err := rtApp.Init(); err != nil {
		log.Errorf("renderer init: %v", err)
		rtApp.Release()
		panic(err)
	}

	state := &PhongRtState{
		RtApp:  rtApp,
		meshes: newMeshSync(),
		near:   mod.Near,
		far:    mod.Far,
	}
	if state.near <= 0 {
		state.near = DefaultNear
	}
	if state.far <= state.near {
		state.far = DefaultFar
	}
	if mod.HotReload && mod.ShaderDir != "" {
		w, err := shaders.NewWatcher(mod.ShaderDir)
		if err != nil {
			log.Warnf("shader hot reload disabled: %v", err)
		} else {
			state.watcher = w
			log.Infof("watching %s for shader changes", w.Dir())
		}
	}
	cmd.AddResources(state)

	for _, line := range controlsHelp {
		log.Infof("%s", line)
	}

	app.UseSystem(
		System(phongRtSyncSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(phongRtRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(phongRtReleaseSystem).
				InStage(PostRender).
				InState(OnExit(app.finalState)),
		)
	}
}

var controlsHelp = []string{
	"controls:",
	"  W/A/S/D      move",
	"  Space/Shift  up/down",
	"  mouse        look (Tab toggles capture)",
	"  scroll       zoom",
	"  F            wireframe",
	"  L            lighting",
	"  T            flashlight",
	"  H            HUD",
	"  Esc          quit",
}

// phongRtSyncSystem applies window resizes, uploads new or changed meshes and
// rebuilds the pipelines when a watched shader file changed.
func phongRtSyncSystem(state *PhongRtState, ws *WindowState, server *AssetServer, cmd *Commands) {
	log := cmd.Logger()
	rt := state.RtApp

	if w, h, ok := ws.takeResize(); ok {
		if err := rt.Resize(w, h); err != nil {
			log.Errorf("resize %dx%d: %v", w, h, err)
		} else {
			log.Debugf("resized to %dx%d", w, h)
		}
	}

	if n, err := state.meshes.sync(server, rt); err != nil {
		log.Errorf("%v", err)
	} else if n > 0 {
		log.Debugf("uploaded %d mesh(es)", n)
	}

	if state.watcher == nil {
		return
	}
	changed, err := state.watcher.Poll()
	if err != nil {
		log.Warnf("shader watcher: %v", err)
	}
	if !changed {
		return
	}
	if err := rt.ReloadShaders(); err != nil {
		log.Errorf("shader reload failed, keeping previous pipelines: %v", err)
		return
	}
	log.Infof("shaders reloaded")
}

func phongRtRenderSystem(state *PhongRtState, ws *WindowState, cam *core.Camera, scene *core.Scene, lighting *core.Lighting, modes *DisplayModes, cmd *Commands) {
	rt := state.RtApp
	// minimised
	if ws.WindowWidth == 0 || ws.WindowHeight == 0 {
		return
	}

	frame := buildFrame(cam, scene, *lighting, *modes, rt.Aspect(), state.near, state.far)

	rt.ClearText()
	if modes.HUD {
		for i, line := range hudLines(*modes, cam, rt.FPS) {
			rt.DrawText(line, 10, 10+float32(i)*hudLineHeight, 1, hudColor)
		}
	}

	if err := rt.Render(frame); err != nil {
		cmd.Logger().Errorf("render: %v", err)
	}
}

func phongRtReleaseSystem(state *PhongRtState, cmd *Commands) {
	if state.watcher != nil {
		if err := state.watcher.Close(); err != nil {
			cmd.Logger().Warnf("shader watcher close: %v", err)
		}
		state.watcher = nil
	}
	state.RtApp.Release()
	cmd.Logger().Debugf("renderer released")
}

// buildFrame gathers what the renderer draws this frame. With the flashlight
// on, the spot light sits at the camera and points where it looks.
func buildFrame(cam *core.Camera, scene *core.Scene, lighting core.Lighting, modes DisplayModes, aspect, near, far float32) app_rt.Frame {
	if modes.Flashlight {
		lighting.Spot.Position = cam.Position
		lighting.Spot.Direction = cam.Front()
		lighting.SpotEnabled = true
	} else {
		lighting.SpotEnabled = false
	}

	return app_rt.Frame{
		View:       cam.ViewMatrix(),
		Projection: mgl32.Perspective(mgl32.DegToRad(cam.FOV()), aspect, near, far),
		ViewPos:    cam.Position,
		Lights:     lighting.Effective(modes.Lighting),
		Objects:    scene.Objects(),
		Markers:    scene.Markers(lighting.Points),
		Wireframe:  modes.Wireframe,
	}
}

const hudLineHeight float32 = 22

var hudColor = [4]float32{1, 1, 1, 1}

func hudLines(modes DisplayModes, cam *core.Camera, fps float64) []string {
	p := cam.Position
	return []string{
		fmt.Sprintf("FPS: %.0f", fps),
		fmt.Sprintf("Pos: (%.1f, %.1f, %.1f)  Yaw: %.1f  Pitch: %.1f  FOV: %.0f", p.X(), p.Y(), p.Z(), cam.Yaw(), cam.Pitch(), cam.FOV()),
		fmt.Sprintf("[F] wireframe: %s  [L] lighting: %s  [T] flashlight: %s", onOff(modes.Wireframe), onOff(modes.Lighting), onOff(modes.Flashlight)),
	}
}
