// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/types"
)

// SliceBuffer stores the document as a slice of lines without their
// terminating newlines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// NewSliceBufferFromString creates a buffer holding text.
func NewSliceBufferFromString(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.setLines(text)
	return sb
}

func (sb *SliceBuffer) setLines(text string) {
	parts := strings.Split(text, "\n")
	lines := make([][]byte, len(parts))
	for i, part := range parts {
		lines[i] = []byte(part)
	}
	sb.lines = lines
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}

	sb.setLines(string(data))
	sb.filePath = filePath
	return nil
}

// Save writes the buffer content to filePath, or to the bound path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// LineLength returns the rune count of a line, or 0 when out of bounds.
func (sb *SliceBuffer) LineLength(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utf8.RuneCount(sb.lines[index])
}

func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

func (sb *SliceBuffer) Text() string {
	return string(sb.Bytes())
}

// SetText replaces the whole content and marks the buffer modified.
func (sb *SliceBuffer) SetText(text string) {
	sb.setLines(text)
	sb.modified = true
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// TextInRange extracts the text between two positions (order-insensitive).
func (sb *SliceBuffer) TextInRange(start, end types.Position) string {
	vStart, vEnd, startOffset, endOffset := sb.validateRange(start, end)

	if vStart.Line == vEnd.Line {
		return string(sb.lines[vStart.Line][startOffset:endOffset])
	}

	var out bytes.Buffer
	out.Write(sb.lines[vStart.Line][startOffset:])
	for line := vStart.Line + 1; line < vEnd.Line; line++ {
		out.WriteByte('\n')
		out.Write(sb.lines[line])
	}
	out.WriteByte('\n')
	out.Write(sb.lines[vEnd.Line][:endOffset])
	return out.String()
}

// ClampPosition returns the nearest valid position.
func (sb *SliceBuffer) ClampPosition(pos types.Position) types.Position {
	valid, _ := sb.validatePosition(pos)
	return valid
}

// PositionToOffset converts a position into a rune offset from the start of the document.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	valid, _ := sb.validatePosition(pos)
	offset := 0
	for i := 0; i < valid.Line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	return offset + valid.Col
}

// OffsetToPosition converts a rune offset into a position, clamping to the document.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range sb.lines {
		length := utf8.RuneCount(line)
		if offset <= length {
			return types.Position{Line: i, Col: offset}
		}
		offset -= length + 1
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) error {
	if len(text) == 0 {
		return nil
	}

	validPos, byteOffset := sb.validatePosition(pos)
	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine[byteOffset:]))
	copy(tail, currentLine[byteOffset:])

	head := make([]byte, byteOffset, byteOffset+len(insertLines[0]))
	copy(head, currentLine[:byteOffset])
	sb.lines[validPos.Line] = append(head, insertLines[0]...)

	if len(insertLines) == 1 {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
		return nil
	}

	newLines := make([][]byte, len(insertLines)-1)
	for i := 1; i < len(insertLines); i++ {
		lineCopy := make([]byte, len(insertLines[i]))
		copy(lineCopy, insertLines[i])
		newLines[i-1] = lineCopy
	}
	newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)

	rest := sb.lines[validPos.Line+1:]
	merged := make([][]byte, 0, len(sb.lines)+len(newLines))
	merged = append(merged, sb.lines[:validPos.Line+1]...)
	merged = append(merged, newLines...)
	merged = append(merged, rest...)
	sb.lines = merged
	return nil
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) error {
	vStart, vEnd, startOffset, endOffset := sb.validateRange(start, end)
	if vStart.Equal(vEnd) {
		return nil
	}

	sb.modified = true

	startLine := sb.lines[vStart.Line]
	endLine := sb.lines[vEnd.Line]

	joined := make([]byte, 0, startOffset+len(endLine)-endOffset)
	joined = append(joined, startLine[:startOffset]...)
	joined = append(joined, endLine[endOffset:]...)

	merged := make([][]byte, 0, len(sb.lines)-(vEnd.Line-vStart.Line))
	merged = append(merged, sb.lines[:vStart.Line]...)
	merged = append(merged, joined)
	merged = append(merged, sb.lines[vEnd.Line+1:]...)
	sb.lines = merged
	return nil
}

// validateRange orders and clamps two positions and returns their byte offsets.
func (sb *SliceBuffer) validateRange(start, end types.Position) (vStart, vEnd types.Position, startOffset, endOffset int) {
	if end.Less(start) {
		start, end = end, start
	}
	vStart, startOffset = sb.validatePosition(start)
	vEnd, endOffset = sb.validatePosition(end)
	return vStart, vEnd, startOffset, endOffset
}

// validatePosition clamps pos into the buffer and returns its byte offset within the line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		return types.Position{}, 0
	}
	if pos.Line >= len(sb.lines) {
		last := len(sb.lines) - 1
		return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}, len(sb.lines[last])
	}
	col, byteOffset := validatePositionOnLine(sb.lines[pos.Line], pos.Col)
	return types.Position{Line: pos.Line, Col: col}, byteOffset
}

// validatePositionOnLine clamps a rune column to the line and returns its byte offset.
func validatePositionOnLine(line []byte, col int) (validCol int, byteOffset int) {
	if col <= 0 {
		return 0, 0
	}
	runeCount := 0
	for byteOffset < len(line) {
		if runeCount == col {
			return col, byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		runeCount++
	}
	return runeCount, len(line)
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
