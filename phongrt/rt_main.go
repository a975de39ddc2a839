package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/phongdemo"
)

const (
	stateRunning phongdemo.State = iota
	stateStopped
)

func main() {
	configPath := flag.String("config", "phongdemo.yaml", "Path to the YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	shaderDir := flag.String("shaders", "", "Load WGSL shaders from this directory and reload them on change")
	flag.Parse()

	cfg, err := phongdemo.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *shaderDir != "" {
		cfg.Render.ShaderDir = *shaderDir
		cfg.Render.HotReload = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	phongdemo.NewAppBuilder().
		UseStates(stateRunning, stateStopped).
		UseModule(cfg.Modules()...).
		Build().
		Run()
}
