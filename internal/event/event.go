// internal/event/event.go
package event

import (
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified   // Fired after a transaction changed the buffer
	TypeBufferLoaded     // Fired after a buffer is successfully loaded
	TypeBufferSaved      // Fired after a buffer is successfully saved
	TypeSelectionChanged // Fired when the selection set changes

	// Input Events
	TypeKeyPressed

	// Plugin / settings events
	TypeSettingsChanged    // Fired after settings were updated or reloaded
	TypeOccurrencesCounted // Fired when the occurrence counter publishes a status

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:            "Unknown",
	TypeBufferModified:     "BufferModified",
	TypeBufferLoaded:       "BufferLoaded",
	TypeBufferSaved:        "BufferSaved",
	TypeSelectionChanged:   "SelectionChanged",
	TypeKeyPressed:         "KeyPressed",
	TypeSettingsChanged:    "SettingsChanged",
	TypeOccurrencesCounted: "OccurrencesCounted",
	TypeAppReady:           "AppReady",
	TypeAppQuit:            "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes a committed transaction.
type BufferModifiedData struct {
	Origin    string
	EditCount int
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// SelectionChangedData carries the new selection set.
type SelectionChangedData struct {
	Selections []types.Selection
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// SettingsChangedData names what triggered the change ("reload", "toggle", ...).
type SettingsChangedData struct {
	Source string
}

// OccurrencesCountedData mirrors the counter status shown in the status bar.
type OccurrencesCountedData struct {
	Count         int
	CaseSensitive bool
	Visible       bool
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
