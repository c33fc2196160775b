package history

import (
	"sync"

	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the editor.
type EditorInterface interface {
	SetText(text string)
	SetSelections(sels []types.Selection)
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// SetMaxHistory changes the limit, dropping the oldest changes past it.
func (m *Manager) SetMaxHistory(n int) {
	if n <= 0 {
		n = DefaultMaxHistory
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.maxHistory = n
	if drop := len(m.changes) - n; drop > 0 {
		m.changes = m.changes[drop:]
		m.currentIndex = max(m.currentIndex-drop, 0)
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}
	m.changes = append(m.changes, change)

	// Drop the oldest changes past the limit.
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "recorded %q, index %d of %d", change.Origin, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change.
func (m *Manager) Undo() bool {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "nothing to undo")
		return false
	}
	m.currentIndex--
	change := m.changes[m.currentIndex]
	m.mutex.Unlock()

	m.restore(change.TextBefore, change.SelectionsBefore, "undo:"+change.Origin)
	return true
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() bool {
	m.mutex.Lock()
	if m.currentIndex >= len(m.changes) {
		m.mutex.Unlock()
		logger.DebugTagf("history", "nothing to redo")
		return false
	}
	change := m.changes[m.currentIndex]
	m.currentIndex++
	m.mutex.Unlock()

	m.restore(change.TextAfter, change.SelectionsAfter, "redo:"+change.Origin)
	return true
}

func (m *Manager) restore(text string, sels []types.Selection, origin string) {
	m.editor.SetText(text)
	m.editor.SetSelections(sels)

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Origin: origin})
	}
	logger.DebugTagf("history", "restored state for %s", origin)
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
