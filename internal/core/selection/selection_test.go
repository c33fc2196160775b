package selection

import (
	"testing"

	"github.com/bethropolis/dupline/internal/types"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

func sel(al, ac, hl, hc int) types.Selection {
	return types.Selection{Anchor: pos(al, ac), Head: pos(hl, hc)}
}

func TestToRange(t *testing.T) {
	backward := sel(2, 4, 1, 0)

	unsorted := ToRange(backward, false)
	if unsorted.From != pos(2, 4) || unsorted.To != pos(1, 0) {
		t.Errorf("unsorted range should keep anchor as from, got %v", unsorted)
	}

	sorted := ToRange(backward, true)
	if sorted.From != pos(1, 0) || sorted.To != pos(2, 4) {
		t.Errorf("sorted range = %v", sorted)
	}

	sameLine := ToRange(sel(0, 5, 0, 2), true)
	if sameLine.From != pos(0, 2) || sameLine.To != pos(0, 5) {
		t.Errorf("same-line sorted range = %v", sameLine)
	}
}

func TestIsEmptyAndForward(t *testing.T) {
	if !IsEmpty(types.Cursor(pos(3, 3))) {
		t.Error("cursor should be empty")
	}
	if IsEmpty(sel(0, 0, 0, 1)) {
		t.Error("one-char selection is not empty")
	}
	if !IsForward(sel(0, 0, 0, 1)) {
		t.Error("anchor before head is forward")
	}
	if IsForward(sel(0, 1, 0, 0)) {
		t.Error("anchor after head is backward")
	}
	if !PositionsEqual(pos(1, 2), pos(1, 2)) || PositionsEqual(pos(1, 2), pos(2, 1)) {
		t.Error("PositionsEqual is structural")
	}
}

func TestTextInRange(t *testing.T) {
	doc := SplitLines("héllo\nworld\nagain")
	tests := []struct {
		r    types.Range
		want string
	}{
		{types.Range{From: pos(0, 1), To: pos(0, 4)}, "éll"},
		{types.Range{From: pos(0, 3), To: pos(2, 2)}, "lo\nworld\nag"},
		{types.Range{From: pos(1, 5), To: pos(2, 0)}, "\n"},
	}
	for _, tt := range tests {
		if got := TextInRange(doc, tt.r); got != tt.want {
			t.Errorf("TextInRange(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestSourceSpan(t *testing.T) {
	doc := SplitLines("first line\n  second word\nthird")
	tests := []struct {
		name string
		sel  types.Selection
		dir  types.Direction
		want types.Range
	}{
		{
			name: "down covers whole lines",
			sel:  sel(0, 3, 1, 2),
			dir:  types.Down,
			want: types.Range{From: pos(0, 0), To: pos(1, 13)},
		},
		{
			name: "up cursor covers its line",
			sel:  types.Cursor(pos(2, 1)),
			dir:  types.Up,
			want: types.Range{From: pos(2, 0), To: pos(2, 5)},
		},
		{
			name: "selection down empty takes the line",
			sel:  types.Cursor(pos(1, 4)),
			dir:  types.SelectionDown,
			want: types.Range{From: pos(1, 0), To: pos(1, 13)},
		},
		{
			name: "selection up keeps the selection",
			sel:  sel(1, 9, 0, 6),
			dir:  types.SelectionUp,
			want: types.Range{From: pos(0, 6), To: pos(1, 9)},
		},
		{
			name: "right empty takes word before cursor",
			sel:  types.Cursor(pos(1, 8)),
			dir:  types.Right,
			want: types.Range{From: pos(1, 2), To: pos(1, 8)},
		},
		{
			name: "left after whitespace is empty",
			sel:  types.Cursor(pos(1, 2)),
			dir:  types.Left,
			want: types.Range{From: pos(1, 2), To: pos(1, 2)},
		},
		{
			name: "right at column zero is empty",
			sel:  types.Cursor(pos(2, 0)),
			dir:  types.Right,
			want: types.Range{From: pos(2, 0), To: pos(2, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceSpan(doc, tt.sel, tt.dir); got != tt.want {
				t.Errorf("SourceSpan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordAt(t *testing.T) {
	doc := SplitLines("x y, foo_bar  baz")
	tests := []struct {
		col   int
		want  types.Range
		found bool
	}{
		{0, types.Range{From: pos(0, 0), To: pos(0, 1)}, true},
		{1, types.Range{From: pos(0, 0), To: pos(0, 1)}, true},
		{6, types.Range{From: pos(0, 5), To: pos(0, 12)}, true},
		{12, types.Range{From: pos(0, 5), To: pos(0, 12)}, true},
		{13, types.Range{}, false},
		{17, types.Range{From: pos(0, 14), To: pos(0, 17)}, true},
	}
	for _, tt := range tests {
		got, ok := WordAt(doc, pos(0, tt.col))
		if ok != tt.found || (ok && got != tt.want) {
			t.Errorf("WordAt(col %d) = %v, %v; want %v, %v", tt.col, got, ok, tt.want, tt.found)
		}
	}
}

func TestOffsets(t *testing.T) {
	doc := SplitLines("ab\nçd\n\nxyz")
	tests := []struct {
		offset int
		pos    types.Position
	}{
		{0, pos(0, 0)},
		{2, pos(0, 2)},
		{3, pos(1, 0)},
		{5, pos(1, 2)},
		{6, pos(2, 0)},
		{7, pos(3, 0)},
		{10, pos(3, 3)},
	}
	for _, tt := range tests {
		if got := OffsetToPosition(doc, tt.offset); got != tt.pos {
			t.Errorf("OffsetToPosition(%d) = %v, want %v", tt.offset, got, tt.pos)
		}
		if got := PositionToOffset(doc, tt.pos); got != tt.offset {
			t.Errorf("PositionToOffset(%v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}
	if got := OffsetToPosition(doc, 99); got != pos(3, 3) {
		t.Errorf("offset past the end = %v, want clamp to 3:3", got)
	}
	if got := Text(doc); got != "ab\nçd\n\nxyz" {
		t.Errorf("Text = %q", got)
	}
}
