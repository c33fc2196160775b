package find

import (
	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

// FlashClass marks the transient highlight shown after selecting occurrences.
const FlashClass = "is-flashing"

// Editor is what the occurrence commands need from the host.
type Editor interface {
	selection.Document
	ListSelections() []types.Selection
	SetSelections(sels []types.Selection)
}

// Highlighter is an optional Editor capability. Editors without it get no
// visual feedback.
type Highlighter interface {
	AddHighlights(ranges []types.Range, class string)
	RemoveHighlights(class string)
}

// target is the text the occurrence commands act on.
type target struct {
	r        types.Range
	text     string
	selected bool // the primary selection already covers r, dragged forward
}

// primaryTarget returns the primary selection's text, or the word under its
// cursor when it is empty.
func primaryTarget(ed Editor, sels []types.Selection) (target, bool) {
	if len(sels) == 0 {
		return target{}, false
	}
	primary := sels[len(sels)-1]

	var r types.Range
	if selection.IsEmpty(primary) {
		word, ok := selection.WordAt(ed, primary.Head)
		if !ok {
			return target{}, false
		}
		r = word
	} else {
		r = selection.ToRange(primary, true)
	}

	text := selection.TextInRange(ed, r)
	if text == "" {
		return target{}, false
	}
	selected := selection.PositionsEqual(r.From, primary.Anchor) && selection.PositionsEqual(r.To, primary.Head)
	return target{r: r, text: text, selected: selected}, true
}

// SelectAll replaces the selections with every occurrence of the primary
// selection (or the word under the cursor). It reports whether the
// selections changed.
func SelectAll(ed Editor, caseSensitive bool) bool {
	tgt, ok := primaryTarget(ed, ed.ListSelections())
	if !ok {
		return false
	}
	m, err := compileOrLog(tgt.text, caseSensitive)
	if err != nil {
		return false
	}

	var sels []types.Selection
	for r := range m.All(ed) {
		sels = append(sels, types.SelectionOf(r))
	}
	if len(sels) == 0 {
		return false
	}

	ed.SetSelections(sels)
	flash(ed, sels)
	logger.DebugTagf("find", "select all %q: %d occurrence(s)", tgt.text, len(sels))
	return true
}

// AddNext grows the selection set by one occurrence. A bare cursor is first
// promoted to the word it touches; otherwise the next occurrence after the
// primary selection is appended. With nothing ahead the selections stay as
// they are.
func AddNext(ed Editor, caseSensitive bool) bool {
	sels := ed.ListSelections()
	tgt, ok := primaryTarget(ed, sels)
	if !ok {
		return false
	}

	if !tgt.selected {
		sels[len(sels)-1] = types.SelectionOf(tgt.r)
		ed.SetSelections(sels)
		flash(ed, sels)
		return true
	}

	m, err := compileOrLog(tgt.text, caseSensitive)
	if err != nil {
		return false
	}
	from := selection.PositionToOffset(ed, tgt.r.To)
	for {
		next, found := m.NextAfter(ed, from)
		if !found {
			logger.DebugTagf("find", "no occurrence of %q after %v", tgt.text, tgt.r.To)
			return false
		}
		if !isSelected(sels, next) {
			sels = append(sels, types.SelectionOf(next))
			break
		}
		from = selection.PositionToOffset(ed, next.To)
	}

	ed.SetSelections(sels)
	flash(ed, sels)
	return true
}

func isSelected(sels []types.Selection, r types.Range) bool {
	for _, s := range sels {
		if selection.ToRange(s, true) == r {
			return true
		}
	}
	return false
}

func flash(ed Editor, sels []types.Selection) {
	h, ok := ed.(Highlighter)
	if !ok {
		return
	}
	h.RemoveHighlights(FlashClass)
	ranges := make([]types.Range, 0, len(sels))
	for _, s := range sels {
		ranges = append(ranges, selection.ToRange(s, true))
	}
	h.AddHighlights(ranges, FlashClass)
}
