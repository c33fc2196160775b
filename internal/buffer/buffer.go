// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/dupline/internal/types"

// Buffer defines the interface for text buffer operations.
// Columns and offsets count runes; a newline counts as one rune.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	LineLength(index int) int
	Bytes() []byte
	Text() string
	SetText(text string)
	TextInRange(start, end types.Position) string
	Insert(pos types.Position, text []byte) error
	Delete(start, end types.Position) error
	ClampPosition(pos types.Position) types.Position
	PositionToOffset(pos types.Position) int
	OffsetToPosition(offset int) types.Position
	FilePath() string
	IsModified() bool
}
