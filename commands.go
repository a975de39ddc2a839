package phongdemo

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Quit ends the app: a stateful app moves to its final state, a stateless
// one stops after the current frame.
func (cmd *Commands) Quit() {
	cmd.app.quit()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
