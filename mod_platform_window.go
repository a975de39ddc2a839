package phongdemo

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single shared GLFW window. Scroll offsets and
// framebuffer resizes arrive through callbacks and are collected here until
// the input and render systems pick them up.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	scrollY float64
	resized bool
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}
	if title == "" {
		title = DefaultWindowTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.addResources(ws)
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	app.UseSystem(
		System(windowSystem).
			InStage(Prelude).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(windowDestroySystem).
				InStage(Finale).
				InState(OnExit(app.finalState)),
		)
	}
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ws.scrollY += yoff
	})
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.WindowWidth = width
		ws.WindowHeight = height
		ws.resized = true
	})
	return ws
}

func (s *WindowState) Window() *glfw.Window { return s.windowGlfw }

// takeScroll returns the vertical scroll collected since the last call.
func (s *WindowState) takeScroll() float64 {
	y := s.scrollY
	s.scrollY = 0
	return y
}

// takeResize reports whether the framebuffer changed size since the last call.
func (s *WindowState) takeResize() (int, int, bool) {
	if !s.resized {
		return 0, 0, false
	}
	s.resized = false
	return s.WindowWidth, s.WindowHeight, true
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

// windowSystem pumps the GLFW event queue and ends the app when the window is
// closed or Escape is pressed.
func windowSystem(s *WindowState, cmd *Commands) {
	if s.windowGlfw == nil {
		return
	}
	glfw.PollEvents()
	if s.windowGlfw.ShouldClose() || s.windowGlfw.GetKey(glfw.KeyEscape) == glfw.Press {
		cmd.Quit()
	}
}

func windowDestroySystem(s *WindowState) {
	s.destroy()
}
