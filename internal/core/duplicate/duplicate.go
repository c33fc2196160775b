// Package duplicate computes the edits and selections for copying lines,
// selections and words in one of seven directions.
package duplicate

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

// OriginPrefix prefixes the origin of every duplication transaction.
const OriginPrefix = "DirectionalCopy_"

// Options carries the settings a duplication reads.
type Options struct {
	AddSpaceBetween bool
}

// Duplicate copies the text covered by each selection in dir.
//
// Selections are visited in the order given; the host lists them in
// ascending document order, which the line bookkeeping relies on. The
// returned transaction is empty when every selection covered only
// whitespace.
func Duplicate(doc selection.Document, selections []types.Selection, dir types.Direction, opts Options) types.Transaction {
	if !dir.Valid() {
		logger.Warnf("duplicate: unknown direction %d", dir)
		return types.Transaction{}
	}
	tx := types.Transaction{Origin: OriginPrefix + dir.String()}
	var sh shifter

	for _, sel := range selections {
		span := selection.SourceSpan(doc, sel, dir)
		content := selection.TextInRange(doc, span)
		if strings.TrimSpace(content) == "" {
			continue
		}

		edit, next := place(doc, sel, span, content, dir, opts, &sh)
		sh.record(edit.From, edit.Text)
		tx.Edits = append(tx.Edits, edit)
		tx.Selections = append(tx.Selections, next)
	}

	if tx.IsEmpty() {
		return types.Transaction{}
	}
	logger.DebugTagf("duplicate", "%s: %d edit(s)", tx.Origin, len(tx.Edits))
	return tx
}

// place returns the insertion for one selection and where the selection
// lands in the resulting document.
func place(doc selection.Document, sel types.Selection, span types.Range, content string, dir types.Direction, opts Options, sh *shifter) (types.Edit, types.Selection) {
	empty := selection.IsEmpty(sel)
	lines := span.To.Line - span.From.Line + 1
	anchor := sh.mapPos(sel.Anchor)
	head := sh.mapPos(sel.Head)

	switch dir {
	case types.Down:
		edit := insertAt(span.To, "\n"+content)
		anchor.Line += lines
		head.Line += lines
		return edit, types.Selection{Anchor: anchor, Head: head}

	case types.Up:
		return insertAt(span.From, content+"\n"), types.Selection{Anchor: anchor, Head: head}

	case types.Left:
		if opts.AddSpaceBetween {
			content += " "
		}
		return insertAt(span.From, content), types.Selection{Anchor: anchor, Head: head}

	case types.Right:
		return right(span, content, sel, opts, sh)

	case types.SelectionDown:
		same := selection.PositionsEqual(sel.Head, span.To)
		contentLen := utf8.RuneCountInString(content)
		anchorLen := selection.LineLength(doc, sel.Anchor.Line)
		headLen := selection.LineLength(doc, sel.Head.Line)

		next := types.Selection{
			Anchor: types.Position{Line: anchor.Line + lines},
			Head:   types.Position{Line: head.Line + lines},
		}
		switch {
		case empty:
			next.Anchor.Col, next.Head.Col = 0, headLen
		case same:
			next.Anchor.Col = 0
			next.Head.Col = headLen
			if lines == 1 {
				next.Head.Col = contentLen
			}
		default:
			next.Anchor.Col = anchorLen
			if lines == 1 {
				next.Anchor.Col = contentLen
			}
			next.Head.Col = 0
		}
		at := types.Position{Line: span.To.Line, Col: selection.LineLength(doc, span.To.Line)}
		return insertAt(at, "\n"+content), next

	case types.SelectionUp:
		same := selection.PositionsEqual(sel.Head, span.To)
		contentLen := utf8.RuneCountInString(content)
		anchorLen := selection.LineLength(doc, sel.Anchor.Line)
		headLen := selection.LineLength(doc, sel.Head.Line)
		toLen := selection.LineLength(doc, span.To.Line)

		next := types.Selection{
			Anchor: types.Position{Line: anchor.Line},
			Head:   types.Position{Line: head.Line},
		}
		if same {
			next.Head.Line = anchor.Line + lines - 1
		}
		switch {
		case empty:
			next.Anchor.Col, next.Head.Col = 0, toLen
		case same:
			next.Anchor.Col = 0
			next.Head.Col = headLen
			if lines == 1 {
				next.Head.Col = contentLen
			}
		default:
			next.Anchor.Col = anchorLen
			if lines == 1 {
				next.Anchor.Col = contentLen
			}
			next.Head.Col = 0
		}
		at := types.Position{Line: span.From.Line}
		return insertAt(at, content+"\n"), next

	case types.RightDown:
		if !empty {
			return right(span, content, sel, opts, sh)
		}
		end := types.Position{Line: anchor.Line, Col: selection.LineLength(doc, span.To.Line)}
		return insertAt(span.To, "\n"+content), types.Cursor(end)
	}

	return types.Edit{From: span.From, To: span.From}, types.Selection{Anchor: anchor, Head: head}
}

// right inserts the content after the span and moves the selection onto
// the copy.
func right(span types.Range, content string, sel types.Selection, opts Options, sh *shifter) (types.Edit, types.Selection) {
	lead := ""
	if opts.AddSpaceBetween {
		lead = " "
	}
	text := lead + content
	edit := insertAt(span.To, text)

	if !strings.Contains(content, "\n") {
		shift := utf8.RuneCountInString(text)
		anchor := sh.mapPos(sel.Anchor)
		head := sh.mapPos(sel.Head)
		anchor.Col += shift
		head.Col += shift
		return edit, types.Selection{Anchor: anchor, Head: head}
	}

	// A multi-line copy is selected as a whole, keeping the drag direction.
	start := sh.mapPos(span.To)
	start.Col += utf8.RuneCountInString(lead)
	end := endOf(start, content)
	if selection.IsForward(sel) {
		return edit, types.Selection{Anchor: start, Head: end}
	}
	return edit, types.Selection{Anchor: end, Head: start}
}

func insertAt(pos types.Position, text string) types.Edit {
	return types.Edit{From: pos, To: pos, Text: text}
}

// endOf returns the position just after text inserted at start.
func endOf(start types.Position, text string) types.Position {
	n := strings.Count(text, "\n")
	if n == 0 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCountInString(text)}
	}
	tail := text[strings.LastIndexByte(text, '\n')+1:]
	return types.Position{Line: start.Line + n, Col: utf8.RuneCountInString(tail)}
}

// shifter maps positions of the original document into the document
// produced by the insertions recorded so far. Insertions must be recorded
// in ascending order and mapped positions must not precede the last one.
type shifter struct {
	lines    int
	line     int
	colDelta int
	active   bool
}

func (s *shifter) mapPos(p types.Position) types.Position {
	out := types.Position{Line: p.Line + s.lines, Col: p.Col}
	if s.active && p.Line == s.line {
		out.Col += s.colDelta
	}
	return out
}

func (s *shifter) record(at types.Position, text string) {
	mapped := s.mapPos(at)
	end := endOf(mapped, text)
	s.lines += strings.Count(text, "\n")
	s.line = at.Line
	s.colDelta = end.Col - at.Col
	s.active = true
}
