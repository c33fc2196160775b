package core

import (
	"slices"

	"github.com/bethropolis/dupline/internal/types"
)

// AddHighlights marks ranges with a visual class.
func (e *Editor) AddHighlights(ranges []types.Range, class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range ranges {
		e.highlights = append(e.highlights, types.HighlightRegion{Range: r, Class: class})
	}
}

// RemoveHighlights drops every highlight of class.
func (e *Editor) RemoveHighlights(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.highlights = slices.DeleteFunc(e.highlights, func(h types.HighlightRegion) bool {
		return h.Class == class
	})
}

// Highlights returns the current highlight regions (for drawing).
func (e *Editor) Highlights() []types.HighlightRegion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.highlights)
}
