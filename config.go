package phongdemo

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/phongdemo/phongrt/rt/core"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultWindowTitle  = "Phong Demo"
)

// Config is the demo configuration. Fields missing from a config file keep
// their DefaultConfig values.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

type RenderConfig struct {
	ShaderDir  string     `yaml:"shader_dir"`
	HotReload  bool       `yaml:"hot_reload"`
	ShowHUD    bool       `yaml:"show_hud"`
	ClearColor [4]float64 `yaml:"clear_color"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	FontSize   float64    `yaml:"font_size"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
	Color  bool   `yaml:"color"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    mgl32.Vec3{0, 2, 8},
			Yaw:         core.DefaultYaw,
			Pitch:       core.DefaultPitch,
			Speed:       core.DefaultSpeed,
			Sensitivity: core.DefaultSensitivity,
			FOV:         core.DefaultZoom,
		},
		Render: RenderConfig{
			ShowHUD:    true,
			ClearColor: [4]float64{0.05, 0.05, 0.08, 1},
			Near:       DefaultNear,
			Far:        DefaultFar,
			FontSize:   18,
		},
		Log: LogConfig{
			Prefix: "phong",
			Color:  true,
		},
	}
}

// LoadConfig reads path over DefaultConfig. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Speed <= 0 {
		errs = append(errs, fmt.Errorf("camera speed %v must be positive", c.Camera.Speed))
	}
	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera sensitivity %v must be positive", c.Camera.Sensitivity))
	}
	if c.Camera.FOV < core.MinZoom || c.Camera.FOV > core.MaxZoom {
		errs = append(errs, fmt.Errorf("camera fov %v outside [%v, %v]", c.Camera.FOV, core.MinZoom, core.MaxZoom))
	}
	if c.Camera.Pitch < -core.PitchLimit || c.Camera.Pitch > core.PitchLimit {
		errs = append(errs, fmt.Errorf("camera pitch %v outside [%v, %v]", c.Camera.Pitch, -core.PitchLimit, core.PitchLimit))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("render near %v / far %v: need 0 < near < far", c.Render.Near, c.Render.Far))
	}
	if c.Render.HotReload && c.Render.ShaderDir == "" {
		errs = append(errs, errors.New("render.hot_reload needs render.shader_dir"))
	}
	return errors.Join(errs...)
}

// Modules returns the demo's modules configured from c, in install order.
func (c Config) Modules() []Module {
	return []Module{
		LoggingModule{Prefix: c.Log.Prefix, Debug: c.Log.Debug, Color: c.Log.Color},
		TimeModule{},
		NewPlatformWindow(c.Window.Width, c.Window.Height, c.Window.Title),
		InputModule{Captured: true},
		FlyingCameraModule{
			Position:    c.Camera.Position,
			Yaw:         c.Camera.Yaw,
			Pitch:       c.Camera.Pitch,
			Speed:       c.Camera.Speed,
			Sensitivity: c.Camera.Sensitivity,
			FOV:         c.Camera.FOV,
		},
		DisplayModule{HUD: c.Render.ShowHUD},
		SceneModule{},
		PhongRtModule{
			ShaderDir:  c.Render.ShaderDir,
			HotReload:  c.Render.HotReload,
			VSync:      c.Window.VSync,
			ClearColor: c.Render.ClearColor,
			Near:       c.Render.Near,
			Far:        c.Render.Far,
			FontSize:   c.Render.FontSize,
		},
	}
}
