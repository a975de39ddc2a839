package phongdemo

// DisplayModes are the runtime render toggles.
type DisplayModes struct {
	Wireframe  bool
	Lighting   bool
	Flashlight bool
	HUD        bool
}

type DisplayModule struct {
	HUD bool
}

func (m DisplayModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&DisplayModes{
		Lighting: true,
		HUD:      m.HUD,
	})
	app.UseSystem(
		System(displaySystem).
			InStage(Update).
			RunAlways(),
	)
}

type displayToggle struct {
	key  int
	name string
	flag func(d *DisplayModes) *bool
}

var displayToggles = []displayToggle{
	{KeyF, "wireframe", func(d *DisplayModes) *bool { return &d.Wireframe }},
	{KeyL, "lighting", func(d *DisplayModes) *bool { return &d.Lighting }},
	{KeyT, "flashlight", func(d *DisplayModes) *bool { return &d.Flashlight }},
	{KeyH, "hud", func(d *DisplayModes) *bool { return &d.HUD }},
}

func displaySystem(input *Input, modes *DisplayModes, cmd *Commands) {
	log := cmd.Logger()
	for _, t := range displayToggles {
		if !input.JustPressed[t.key] {
			continue
		}
		on := modes.toggle(t)
		log.Infof("%s: %s", t.name, onOff(on))
	}
}

func (d *DisplayModes) toggle(t displayToggle) bool {
	f := t.flag(d)
	*f = !*f
	return *f
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
