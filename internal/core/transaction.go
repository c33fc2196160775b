package core

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/core/history"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

var (
	// ErrOverlappingEdits rejects a transaction whose edits touch the same text.
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrInvalidPosition rejects an edit outside the document.
	ErrInvalidPosition = errors.New("invalid position")
)

// span is an edit in rune offsets of the pre-transaction document.
type span struct {
	from, to int
	n        int // runes inserted
	idx      int
	edit     types.Edit
}

// ApplyTransaction commits every edit of tx at once. All edits address the
// document as it was before the call. Either every edit is applied and one
// history step is recorded, or an error is returned and nothing changes.
//
// tx.Selections replaces the selections; nil maps the current ones
// through the edits.
func (e *Editor) ApplyTransaction(tx types.Transaction) error {
	if tx.IsEmpty() && tx.Selections == nil {
		return nil
	}

	e.mu.Lock()
	spans, err := e.validateLocked(tx.Edits)
	if err != nil {
		e.mu.Unlock()
		logger.WarnTagf("core", "rejected %q: %v", tx.Origin, err)
		return fmt.Errorf("apply %q: %w", tx.Origin, err)
	}

	textBefore := e.buffer.Text()
	selsBefore := slices.Clone(e.selections)
	var offsets []selectionOffsets
	if tx.Selections == nil {
		offsets = e.offsetsLocked(selsBefore)
	}

	if err := e.applyLocked(spans); err != nil {
		e.buffer.SetText(textBefore)
		e.mu.Unlock()
		return fmt.Errorf("apply %q: %w", tx.Origin, err)
	}

	if tx.Selections != nil {
		e.selections = e.clampLocked(tx.Selections)
	} else {
		e.selections = e.mapSelectionsLocked(offsets, spans)
	}
	change := history.Change{
		Origin:           tx.Origin,
		TextBefore:       textBefore,
		TextAfter:        e.buffer.Text(),
		SelectionsBefore: selsBefore,
		SelectionsAfter:  slices.Clone(e.selections),
	}
	em := e.eventManager
	e.mu.Unlock()

	if len(spans) > 0 {
		e.history.RecordChange(change)
	}
	logger.DebugTagf("core", "applied %q: %d edit(s), %d selection(s)", tx.Origin, len(spans), len(change.SelectionsAfter))

	if em != nil {
		if len(spans) > 0 {
			em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Origin: tx.Origin, EditCount: len(spans)})
		}
		em.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selections: change.SelectionsAfter})
	}
	return nil
}

// validateLocked checks every edit against the current document and
// returns them sorted by position. No-op edits are dropped.
func (e *Editor) validateLocked(edits []types.Edit) ([]span, error) {
	spans := make([]span, 0, len(edits))
	for i, ed := range edits {
		if ed.IsNoop() {
			continue
		}
		if !e.validLocked(ed.From) || !e.validLocked(ed.To) || ed.To.Less(ed.From) {
			return nil, fmt.Errorf("edit %d (%v-%v): %w", i, ed.From, ed.To, ErrInvalidPosition)
		}
		spans = append(spans, span{
			from: e.buffer.PositionToOffset(ed.From),
			to:   e.buffer.PositionToOffset(ed.To),
			n:    utf8.RuneCountInString(ed.Text),
			idx:  i,
			edit: ed,
		})
	}

	slices.SortStableFunc(spans, func(a, b span) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})
	for i := 1; i < len(spans); i++ {
		if spans[i].from < spans[i-1].to {
			return nil, fmt.Errorf("edits %d and %d: %w", spans[i-1].idx, spans[i].idx, ErrOverlappingEdits)
		}
	}
	return spans, nil
}

func (e *Editor) validLocked(p types.Position) bool {
	if p.Line < 0 || p.Line >= e.buffer.LineCount() || p.Col < 0 {
		return false
	}
	return p.Col <= e.buffer.LineLength(p.Line)
}

// applyLocked applies sorted spans back to front so earlier offsets stay
// valid. At equal offsets deletions go first, then later edits before
// earlier ones, which leaves insertions in transaction order.
func (e *Editor) applyLocked(spans []span) error {
	order := slices.Clone(spans)
	slices.SortStableFunc(order, func(a, b span) int {
		if a.from != b.from {
			return b.from - a.from
		}
		if a.to != b.to {
			return b.to - a.to
		}
		return b.idx - a.idx
	})

	for _, s := range order {
		if s.to > s.from {
			if err := e.buffer.Delete(s.edit.From, s.edit.To); err != nil {
				return err
			}
		}
		if s.edit.Text != "" {
			if err := e.buffer.Insert(s.edit.From, []byte(s.edit.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}

// selectionOffsets holds a selection's ends in rune offsets.
type selectionOffsets struct {
	anchor, head int
	forward      bool
	empty        bool
}

func (e *Editor) offsetsLocked(sels []types.Selection) []selectionOffsets {
	out := make([]selectionOffsets, len(sels))
	for i, s := range sels {
		out[i] = selectionOffsets{
			anchor:  e.buffer.PositionToOffset(s.Anchor),
			head:    e.buffer.PositionToOffset(s.Head),
			forward: !s.Head.Less(s.Anchor),
			empty:   s.Anchor.Equal(s.Head),
		}
	}
	return out
}

// mapSelectionsLocked moves selections through applied spans. Range starts
// stay after text inserted at them and range ends stay before it, so a
// selection never grows; a cursor moves past text inserted at it.
func (e *Editor) mapSelectionsLocked(sels []selectionOffsets, spans []span) []types.Selection {
	out := make([]types.Selection, len(sels))
	for i, s := range sels {
		anchorAssoc, headAssoc := 1, 1
		if !s.empty {
			if s.forward {
				headAssoc = -1
			} else {
				anchorAssoc = -1
			}
		}
		anchor := mapOffset(s.anchor, spans, anchorAssoc)
		head := mapOffset(s.head, spans, headAssoc)
		if !s.empty && s.forward == (head < anchor) {
			// The whole range was deleted.
			head = anchor
		}
		out[i] = types.Selection{
			Anchor: e.buffer.OffsetToPosition(anchor),
			Head:   e.buffer.OffsetToPosition(head),
		}
	}
	return e.clampLocked(out)
}

// mapOffset maps an offset of the old document through sorted,
// non-overlapping spans. assoc decides which side of text inserted exactly
// at off the result lands on.
func mapOffset(off int, spans []span, assoc int) int {
	delta := 0
	for _, s := range spans {
		switch {
		case s.from == s.to && s.from == off:
			if assoc > 0 {
				delta += s.n
			}
		case s.to <= off:
			delta += s.n - (s.to - s.from)
		case s.from < off:
			if assoc > 0 {
				return s.from + delta + s.n
			}
			return s.from + delta
		default:
			return off + delta
		}
	}
	return off + delta
}
