// internal/plugin/plugin.go
package plugin

import (
	"errors"

	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/core/find"
	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/types"
)

// ErrCommandExists is returned when a command id is registered twice.
var ErrCommandExists = errors.New("command already registered")

// ErrNoActiveEditor is returned by commands run without an editor.
var ErrNoActiveEditor = errors.New("no active editor")

// Editor is the editing surface plugins operate on.
type Editor interface {
	find.Editor
	// SelectionText returns the primary selection's text.
	SelectionText() string
	// ApplyTransaction applies all edits atomically as one undo step.
	ApplyTransaction(tx types.Transaction) error
}

// Command is a named operation a plugin exposes to the host.
type Command struct {
	ID   string
	Name string // Human readable title
	Run  func() error
}

// EditorAPI defines the methods plugins can use to interact with the host.
// This acts as a controlled interface, preventing plugins from accessing everything.
type EditorAPI interface {
	// ActiveEditor returns the editor commands act on, if any.
	ActiveEditor() (Editor, bool)

	// --- Settings ---
	Settings() config.Settings
	UpdateSettings(fn func(*config.Settings)) error

	// --- Command Registration ---
	RegisterCommand(cmd Command) error
	UnregisterCommand(id string)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Status Bar ---
	SetOccurrenceStatus(status occurrence.Status)
	SetStatusMessage(format string, args ...interface{})
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
