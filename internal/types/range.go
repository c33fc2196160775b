package types

import "fmt"

// Range is an ordered span of text; From is never after To.
type Range struct {
	From Position
	To   Position
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.From.Equal(r.To)
}

// Overlaps reports whether two ordered ranges share any text.
// Touching ranges do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.From.Less(other.To) && other.From.Less(r.To)
}

func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.From, r.To)
}

// Selection is the unordered form of a range: Anchor is where the drag
// began, Head is the movable end. Anchor may come after Head.
type Selection struct {
	Anchor Position
	Head   Position
}

// Cursor returns an empty selection at pos.
func Cursor(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// SelectionOf returns a forward selection covering r.
func SelectionOf(r Range) Selection {
	return Selection{Anchor: r.From, Head: r.To}
}

func (s Selection) String() string {
	return fmt.Sprintf("%v->%v", s.Anchor, s.Head)
}

// HighlightRegion is a transiently decorated range, e.g. a flash after
// selecting occurrences.
type HighlightRegion struct {
	Range
	Class string
}
