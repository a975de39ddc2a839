package phongdemo

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeyF
	KeyH
	KeyL
	KeyT
	KeySpace
	KeyShift
	KeyTab
	KeyEscape
	keyCount
)

type InputModule struct {
	// Captured starts the app with the cursor grabbed for mouse look.
	Captured bool
}

type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	ScrollY float64

	// hasCursor is false until a cursor sample has been taken since capture
	// started; that first sample only sets the reference position.
	hasCursor    bool
	cursorMode   int
	cursorModeOk bool
}

// inputSource is the part of a GLFW window the input system reads.
type inputSource interface {
	GetKey(key glfw.Key) glfw.Action
	GetCursorPos() (x, y float64)
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{MouseCaptured: mod.Captured})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	if s.windowGlfw == nil {
		return
	}
	input.poll(s.windowGlfw, s.takeScroll())

	mode := glfw.CursorNormal
	if input.MouseCaptured {
		mode = glfw.CursorDisabled
	}
	if !input.cursorModeOk || input.cursorMode != mode {
		s.windowGlfw.SetInputMode(glfw.CursorMode, mode)
		input.cursorMode = mode
		input.cursorModeOk = true
	}
}

// SetCaptured grabs or releases the cursor. The next cursor sample after a
// change produces no delta.
func (input *Input) SetCaptured(captured bool) {
	if input.MouseCaptured != captured {
		input.hasCursor = false
	}
	input.MouseCaptured = captured
}

func (input *Input) poll(src inputSource, scroll float64) {
	for key, glfwKey := range keyToGlfw {
		action := src.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if glfw.Press == action {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if glfw.Release == action {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	mx, my := src.GetCursorPos()
	if input.MouseCaptured && input.hasCursor {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	} else {
		input.MouseDeltaX = 0
		input.MouseDeltaY = 0
	}
	input.hasCursor = true
	input.MouseX = mx
	input.MouseY = my

	input.ScrollY = scroll
}

var keyToGlfw = map[int]glfw.Key{
	KeyW:      glfw.KeyW,
	KeyA:      glfw.KeyA,
	KeyS:      glfw.KeyS,
	KeyD:      glfw.KeyD,
	KeyF:      glfw.KeyF,
	KeyH:      glfw.KeyH,
	KeyL:      glfw.KeyL,
	KeyT:      glfw.KeyT,
	KeySpace:  glfw.KeySpace,
	KeyShift:  glfw.KeyLeftShift,
	KeyTab:    glfw.KeyTab,
	KeyEscape: glfw.KeyEscape,
}
