// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/plugin"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) ActiveEditor() (plugin.Editor, bool) {
	if api.app.editor == nil {
		return nil, false
	}
	return api.app.editor, true
}

// --- Settings ---

func (api *appEditorAPI) Settings() config.Settings {
	return api.app.store.Settings()
}

func (api *appEditorAPI) UpdateSettings(fn func(*config.Settings)) error {
	return api.app.store.Update(fn)
}

// --- Commands ---

func (api *appEditorAPI) RegisterCommand(cmd plugin.Command) error {
	return api.app.registry.Register(cmd)
}

func (api *appEditorAPI) UnregisterCommand(id string) {
	api.app.registry.Unregister(id)
}

// --- Events ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Status Bar ---

func (api *appEditorAPI) SetOccurrenceStatus(status occurrence.Status) {
	api.app.setOccurrenceStatus(status)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}
