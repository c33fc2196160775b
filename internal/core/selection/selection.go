// Package selection converts between unordered selections and ordered
// ranges and works out which text an operation acts on.
package selection

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/types"
	"github.com/rivo/uniseg"
)

// Document is the read-only view of the buffer the core works on.
type Document interface {
	GetLine(line int) string
	LineCount() int
}

// Lines is a Document backed by a slice of lines.
type Lines []string

// SplitLines builds a Document from text.
func SplitLines(text string) Lines {
	return Lines(strings.Split(text, "\n"))
}

func (l Lines) GetLine(line int) string {
	if line < 0 || line >= len(l) {
		return ""
	}
	return l[line]
}

func (l Lines) LineCount() int {
	return len(l)
}

// ToRange returns the selection as {From: Anchor, To: Head}, or ordered
// ascending by (line, column) when sort is set.
func ToRange(sel types.Selection, sort bool) types.Range {
	if sort && sel.Head.Less(sel.Anchor) {
		return types.Range{From: sel.Head, To: sel.Anchor}
	}
	return types.Range{From: sel.Anchor, To: sel.Head}
}

// IsEmpty reports whether the selection is a bare cursor.
func IsEmpty(sel types.Selection) bool {
	return PositionsEqual(sel.Anchor, sel.Head)
}

// PositionsEqual checks if two positions are equal.
func PositionsEqual(p1, p2 types.Position) bool {
	return p1.Line == p2.Line && p1.Col == p2.Col
}

// IsForward reports whether the head sits at the ordered range's end,
// i.e. the user dragged forward.
func IsForward(sel types.Selection) bool {
	return PositionsEqual(sel.Head, ToRange(sel, true).To)
}

// LineLength returns the rune count of a line.
func LineLength(doc Document, line int) int {
	return utf8.RuneCountInString(doc.GetLine(line))
}

// TextInRange extracts the text covered by an ordered range.
func TextInRange(doc Document, r types.Range) string {
	if r.From.Line == r.To.Line {
		return sliceRunes(doc.GetLine(r.From.Line), r.From.Col, r.To.Col)
	}
	var sb strings.Builder
	first := doc.GetLine(r.From.Line)
	sb.WriteString(sliceRunes(first, r.From.Col, utf8.RuneCountInString(first)))
	for line := r.From.Line + 1; line < r.To.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(doc.GetLine(line))
	}
	sb.WriteByte('\n')
	sb.WriteString(sliceRunes(doc.GetLine(r.To.Line), 0, r.To.Col))
	return sb.String()
}

// sliceRunes returns s[from:to] in rune columns, clamped to the string.
func sliceRunes(s string, from, to int) string {
	runes := []rune(s)
	if to > len(runes) {
		to = len(runes)
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return ""
	}
	return string(runes[from:to])
}

// SourceSpan returns the ordered span a duplication in dir copies.
func SourceSpan(doc Document, sel types.Selection, dir types.Direction) types.Range {
	r := ToRange(sel, true)
	empty := IsEmpty(sel)

	switch dir {
	case types.Up, types.Down:
		return types.Range{
			From: types.Position{Line: r.From.Line, Col: 0},
			To:   types.Position{Line: r.To.Line, Col: LineLength(doc, r.To.Line)},
		}
	case types.SelectionUp, types.SelectionDown, types.RightDown:
		if empty {
			return types.Range{
				From: types.Position{Line: r.To.Line, Col: 0},
				To:   types.Position{Line: r.To.Line, Col: LineLength(doc, r.To.Line)},
			}
		}
		return r
	default:
		// Left/Right fall back to the word before the cursor.
		if empty && r.From.Col > 0 {
			start := wordStartBefore(doc.GetLine(r.From.Line), r.From.Col)
			return types.Range{
				From: types.Position{Line: r.From.Line, Col: start},
				To:   r.From,
			}
		}
		return r
	}
}

// wordStartBefore walks back from col over non-whitespace runes.
func wordStartBefore(line string, col int) int {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	start := col
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return start
}

// WordAt returns the word containing or ending at pos, using Unicode word
// boundaries. Punctuation and whitespace segments are not words.
func WordAt(doc Document, pos types.Position) (types.Range, bool) {
	line := doc.GetLine(pos.Line)
	rest := line
	state := -1
	col := 0

	var ending types.Range
	endingFound := false

	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := col
		col += utf8.RuneCountInString(word)
		if !isWordSegment(word) {
			continue
		}
		r := types.Range{
			From: types.Position{Line: pos.Line, Col: start},
			To:   types.Position{Line: pos.Line, Col: col},
		}
		if start <= pos.Col && pos.Col < col {
			return r, true
		}
		if col == pos.Col {
			ending, endingFound = r, true
		}
	}
	return ending, endingFound
}

func isWordSegment(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// Text joins the document's lines with newlines.
func Text(doc Document) string {
	var sb strings.Builder
	for i := 0; i < doc.LineCount(); i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(doc.GetLine(i))
	}
	return sb.String()
}

// PositionToOffset converts a position to a rune offset from the start of
// the document, counting one rune per line break.
func PositionToOffset(doc Document, pos types.Position) int {
	offset := 0
	for i := 0; i < pos.Line && i < doc.LineCount(); i++ {
		offset += LineLength(doc, i) + 1
	}
	return offset + pos.Col
}

// OffsetToPosition is the inverse of PositionToOffset. Offsets past the end
// clamp to the end of the last line.
func OffsetToPosition(doc Document, offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	last := doc.LineCount() - 1
	for line := 0; line < last; line++ {
		n := LineLength(doc, line)
		if offset <= n {
			return types.Position{Line: line, Col: offset}
		}
		offset -= n + 1
	}
	if last < 0 {
		return types.Position{}
	}
	if n := LineLength(doc, last); offset > n {
		offset = n
	}
	return types.Position{Line: last, Col: offset}
}
