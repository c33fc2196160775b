package commands

import (
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/plugin"
)

// Built-in command ids.
const (
	CmdUndo = "undo"
	CmdRedo = "redo"
	CmdSave = "save"
)

// AppAPI is what the built-in commands need from the application.
type AppAPI interface {
	Undo() bool
	Redo() bool
	Save() error
	SetStatusMessage(format string, args ...interface{})
}

// RegisterAppCommands registers the built-in history and file commands.
func RegisterAppCommands(r *Registry, app AppAPI) {
	builtins := []plugin.Command{
		{ID: CmdUndo, Name: "Undo", Run: func() error {
			if !app.Undo() {
				app.SetStatusMessage("Nothing to undo")
			}
			return nil
		}},
		{ID: CmdRedo, Name: "Redo", Run: func() error {
			if !app.Redo() {
				app.SetStatusMessage("Nothing to redo")
			}
			return nil
		}},
		{ID: CmdSave, Name: "Save", Run: func() error {
			if err := app.Save(); err != nil {
				return err
			}
			app.SetStatusMessage("Saved")
			return nil
		}},
	}
	for _, cmd := range builtins {
		if err := r.Register(cmd); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", cmd.ID, err)
		}
	}
}
