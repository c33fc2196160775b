// Package history provides undo/redo functionality via a change history stack.
package history

import "github.com/bethropolis/dupline/internal/types"

// Change is one committed transaction: the document and selections on
// either side of it.
type Change struct {
	Origin           string
	TextBefore       string
	TextAfter        string
	SelectionsBefore []types.Selection
	SelectionsAfter  []types.Selection
}
