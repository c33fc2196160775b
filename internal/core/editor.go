// internal/core/editor.go
package core

import (
	"slices"
	"sync"

	"github.com/bethropolis/dupline/internal/buffer"
	"github.com/bethropolis/dupline/internal/core/history"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

// Editor is the editing surface the plugin works against: a buffer, a set
// of selections, transient highlights and an undo history.
type Editor struct {
	mu           sync.RWMutex
	buffer       buffer.Buffer
	selections   []types.Selection // never empty; the last one is primary
	highlights   []types.HighlightRegion
	eventManager *event.Manager
	history      *history.Manager
}

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:     buf,
		selections: []types.Selection{types.Cursor(types.Position{})},
	}
	e.history = history.NewManager(e, history.DefaultMaxHistory)
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventManager = mgr
}

// GetEventManager returns the event manager, possibly nil.
func (e *Editor) GetEventManager() *event.Manager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.eventManager
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetLine returns a line's text, or "" when out of range.
func (e *Editor) GetLine(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, err := e.buffer.Line(line)
	if err != nil {
		return ""
	}
	return string(b)
}

func (e *Editor) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.LineCount()
}

// LastLine returns the index of the last line.
func (e *Editor) LastLine() int {
	return e.LineCount() - 1
}

func (e *Editor) LineLength(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.LineLength(line)
}

// GetText returns the full document.
func (e *Editor) GetText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.Text()
}

// GetRange returns the text between two positions.
func (e *Editor) GetRange(r types.Range) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.TextInRange(r.From, r.To)
}

func (e *Editor) PositionToOffset(pos types.Position) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.PositionToOffset(pos)
}

func (e *Editor) OffsetToPosition(offset int) types.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buffer.OffsetToPosition(offset)
}

// SetText replaces the document without recording history. Selections are
// clamped to the new content.
func (e *Editor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer.SetText(text)
	e.selections = e.clampLocked(e.selections)
	e.highlights = nil
}

// ListSelections returns a copy of the current selections.
func (e *Editor) ListSelections() []types.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.selections)
}

// SetSelections replaces the selections, clamping them to the document.
// An empty list leaves a single cursor at the start.
func (e *Editor) SetSelections(sels []types.Selection) {
	e.mu.Lock()
	e.selections = e.clampLocked(sels)
	current := slices.Clone(e.selections)
	em := e.eventManager
	e.mu.Unlock()

	if em != nil {
		em.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selections: current})
	}
}

// SelectionText returns the text of the primary selection.
func (e *Editor) SelectionText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	primary := e.selections[len(e.selections)-1]
	return e.buffer.TextInRange(primary.Anchor, primary.Head)
}

func (e *Editor) clampLocked(sels []types.Selection) []types.Selection {
	if len(sels) == 0 {
		return []types.Selection{types.Cursor(types.Position{})}
	}
	out := make([]types.Selection, len(sels))
	for i, s := range sels {
		out[i] = types.Selection{
			Anchor: e.buffer.ClampPosition(s.Anchor),
			Head:   e.buffer.ClampPosition(s.Head),
		}
	}
	return out
}

// SaveBuffer writes the buffer to its bound path, or to filePath when given.
func (e *Editor) SaveBuffer(filePath ...string) error {
	savePath := ""
	if len(filePath) > 0 {
		savePath = filePath[0]
	}
	e.mu.Lock()
	err := e.buffer.Save(savePath)
	actualPath := e.buffer.FilePath()
	em := e.eventManager
	e.mu.Unlock()
	if err != nil {
		return err
	}
	if em != nil {
		em.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: actualPath})
	}
	return nil
}

// Undo reverts the last transaction.
func (e *Editor) Undo() bool {
	return e.history.Undo()
}

// Redo reapplies the last undone transaction.
func (e *Editor) Redo() bool {
	return e.history.Redo()
}

// SetMaxHistory limits the number of undo steps kept.
func (e *Editor) SetMaxHistory(n int) {
	e.history.SetMaxHistory(n)
}

// ClearHistory forgets all recorded transactions.
func (e *Editor) ClearHistory() {
	e.history.Clear()
	logger.DebugTagf("core", "history cleared")
}
