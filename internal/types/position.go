// internal/types/position.go
package types

import "fmt"

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Compare orders positions by line, then column.
// It returns -1, 0 or 1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Less reports whether p comes before other.
func (p Position) Less(other Position) bool {
	return p.Compare(other) < 0
}

// Equal reports structural equality.
func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
