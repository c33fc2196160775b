package duplicate

import (
	"sort"
	"strings"
	"testing"

	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/types"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

func sel(al, ac, hl, hc int) types.Selection {
	return types.Selection{Anchor: pos(al, ac), Head: pos(hl, hc)}
}

// apply commits the edits against the original text, last edit first.
func apply(t *testing.T, text string, edits []types.Edit) string {
	t.Helper()
	lines := strings.Split(text, "\n")
	offset := func(p types.Position) int {
		off := 0
		for i := 0; i < p.Line; i++ {
			off += len([]rune(lines[i])) + 1
		}
		return off + p.Col
	}

	type span struct {
		from, to, idx int
		text          string
	}
	spans := make([]span, len(edits))
	for i, e := range edits {
		spans[i] = span{offset(e.From), offset(e.To), i, e.Text}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].from != spans[j].from {
			return spans[i].from > spans[j].from
		}
		return spans[i].idx > spans[j].idx
	})

	runes := []rune(text)
	for _, s := range spans {
		out := append([]rune{}, runes[:s.from]...)
		out = append(out, []rune(s.text)...)
		runes = append(out, runes[s.to:]...)
	}
	return string(runes)
}

func TestDuplicateDownScenario(t *testing.T) {
	text := "alpha\nbeta"
	tx := Duplicate(selection.SplitLines(text), []types.Selection{types.Cursor(pos(0, 3))}, types.Down, Options{})

	if tx.Origin != "DirectionalCopy_Down" {
		t.Errorf("origin = %q", tx.Origin)
	}
	if got := apply(t, text, tx.Edits); got != "alpha\nalpha\nbeta" {
		t.Errorf("buffer = %q", got)
	}
	if len(tx.Selections) != 1 || tx.Selections[0] != types.Cursor(pos(1, 3)) {
		t.Errorf("selections = %v, want cursor at 1:3", tx.Selections)
	}
}

func TestDuplicate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sels     []types.Selection
		dir      types.Direction
		space    bool
		wantText string
		wantSels []types.Selection
	}{
		{
			name:     "up keeps the cursor on the upper copy",
			text:     "alpha\nbeta",
			sels:     []types.Selection{types.Cursor(pos(1, 2))},
			dir:      types.Up,
			wantText: "alpha\nbeta\nbeta",
			wantSels: []types.Selection{types.Cursor(pos(1, 2))},
		},
		{
			name:     "down with several cursors accumulates shift",
			text:     "a\nb\nc",
			sels:     []types.Selection{types.Cursor(pos(0, 0)), types.Cursor(pos(2, 1))},
			dir:      types.Down,
			wantText: "a\na\nb\nc\nc",
			wantSels: []types.Selection{types.Cursor(pos(1, 0)), types.Cursor(pos(4, 1))},
		},
		{
			name:     "down over a multi-line selection copies whole lines",
			text:     "one\ntwo\nend",
			sels:     []types.Selection{sel(0, 1, 1, 2)},
			dir:      types.Down,
			wantText: "one\ntwo\none\ntwo\nend",
			wantSels: []types.Selection{sel(2, 1, 3, 2)},
		},
		{
			name:     "left copies the word before the cursor",
			text:     "foo bar",
			sels:     []types.Selection{types.Cursor(pos(0, 7))},
			dir:      types.Left,
			space:    true,
			wantText: "foo bar bar",
			wantSels: []types.Selection{types.Cursor(pos(0, 7))},
		},
		{
			name:     "right selects the copy",
			text:     "foo bar",
			sels:     []types.Selection{sel(0, 4, 0, 7)},
			dir:      types.Right,
			space:    true,
			wantText: "foo bar bar",
			wantSels: []types.Selection{sel(0, 8, 0, 11)},
		},
		{
			name:     "right without space",
			text:     "foo bar",
			sels:     []types.Selection{sel(0, 4, 0, 7)},
			dir:      types.Right,
			wantText: "foo barbar",
			wantSels: []types.Selection{sel(0, 7, 0, 10)},
		},
		{
			name:     "right with two cursors on one line",
			text:     "ab cd",
			sels:     []types.Selection{types.Cursor(pos(0, 2)), types.Cursor(pos(0, 5))},
			dir:      types.Right,
			wantText: "abab cdcd",
			wantSels: []types.Selection{types.Cursor(pos(0, 4)), types.Cursor(pos(0, 9))},
		},
		{
			name:     "selection down forward",
			text:     "hello world",
			sels:     []types.Selection{sel(0, 6, 0, 11)},
			dir:      types.SelectionDown,
			wantText: "hello world\nworld",
			wantSels: []types.Selection{sel(1, 0, 1, 5)},
		},
		{
			name:     "selection down backward",
			text:     "hello world",
			sels:     []types.Selection{sel(0, 11, 0, 6)},
			dir:      types.SelectionDown,
			wantText: "hello world\nworld",
			wantSels: []types.Selection{sel(1, 5, 1, 0)},
		},
		{
			name:     "selection down on a cursor copies the line",
			text:     "hello",
			sels:     []types.Selection{types.Cursor(pos(0, 3))},
			dir:      types.SelectionDown,
			wantText: "hello\nhello",
			wantSels: []types.Selection{sel(1, 0, 1, 5)},
		},
		{
			name:     "selection up forward",
			text:     "hello world",
			sels:     []types.Selection{sel(0, 6, 0, 11)},
			dir:      types.SelectionUp,
			wantText: "world\nhello world",
			wantSels: []types.Selection{sel(0, 0, 0, 5)},
		},
		{
			name:     "selection up backward",
			text:     "hello world",
			sels:     []types.Selection{sel(0, 11, 0, 6)},
			dir:      types.SelectionUp,
			wantText: "world\nhello world",
			wantSels: []types.Selection{sel(0, 5, 0, 0)},
		},
		{
			name:     "selection up on a cursor copies the line",
			text:     "a\nxyz",
			sels:     []types.Selection{types.Cursor(pos(1, 2))},
			dir:      types.SelectionUp,
			wantText: "a\nxyz\nxyz",
			wantSels: []types.Selection{sel(1, 0, 1, 3)},
		},
		{
			name:     "selection down multi-line forward",
			text:     "abc\ndef",
			sels:     []types.Selection{sel(0, 1, 1, 2)},
			dir:      types.SelectionDown,
			wantText: "abc\ndef\nbc\nde",
			wantSels: []types.Selection{sel(2, 0, 3, 3)},
		},
		{
			name:     "right down on a cursor copies the line below",
			text:     "ab\ncd",
			sels:     []types.Selection{types.Cursor(pos(0, 1))},
			dir:      types.RightDown,
			space:    true,
			wantText: "ab\nab\ncd",
			wantSels: []types.Selection{types.Cursor(pos(0, 2))},
		},
		{
			name:     "right down on a selection behaves as right",
			text:     "ab",
			sels:     []types.Selection{sel(0, 0, 0, 1)},
			dir:      types.RightDown,
			space:    true,
			wantText: "a ab",
			wantSels: []types.Selection{sel(0, 2, 0, 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Duplicate(selection.SplitLines(tt.text), tt.sels, tt.dir, Options{AddSpaceBetween: tt.space})
			if got := apply(t, tt.text, tx.Edits); got != tt.wantText {
				t.Errorf("buffer = %q, want %q", got, tt.wantText)
			}
			if len(tx.Selections) != len(tt.wantSels) {
				t.Fatalf("got %d selections, want %d", len(tx.Selections), len(tt.wantSels))
			}
			for i := range tt.wantSels {
				if tx.Selections[i] != tt.wantSels[i] {
					t.Errorf("selection %d = %v, want %v", i, tx.Selections[i], tt.wantSels[i])
				}
			}
		})
	}
}

func TestDuplicateSkipsBlankContent(t *testing.T) {
	doc := selection.SplitLines("   \nx")
	for _, dir := range []types.Direction{types.Up, types.Down, types.SelectionDown, types.Left, types.Right} {
		tx := Duplicate(doc, []types.Selection{types.Cursor(pos(0, 3))}, dir, Options{AddSpaceBetween: true})
		if !tx.IsEmpty() {
			t.Errorf("%v: expected no edits, got %v", dir, tx.Edits)
		}
	}

	tx := Duplicate(doc, []types.Selection{types.Cursor(pos(1, 0))}, types.Right, Options{})
	if !tx.IsEmpty() {
		t.Errorf("right at column 0 has nothing to copy, got %v", tx.Edits)
	}
}

func TestDuplicateUnknownDirection(t *testing.T) {
	tx := Duplicate(selection.SplitLines("x"), []types.Selection{types.Cursor(pos(0, 0))}, types.Direction(42), Options{})
	if !tx.IsEmpty() || tx.Origin != "" {
		t.Errorf("expected empty transaction, got %+v", tx)
	}
}

func TestDuplicateInsertsOneBlockPerCommand(t *testing.T) {
	text := "first\nsecond\nthird"
	block := []types.Selection{sel(0, 2, 1, 3)}

	down := Duplicate(selection.SplitLines(text), block, types.Down, Options{})
	afterDown := apply(t, text, down.Edits)
	if n := strings.Count(afterDown, "\n") + 1; n != 5 {
		t.Fatalf("after down: %d lines, want 5", n)
	}

	up := Duplicate(selection.SplitLines(afterDown), down.Selections, types.Up, Options{})
	afterUp := apply(t, afterDown, up.Edits)
	if n := strings.Count(afterUp, "\n") + 1; n != 7 {
		t.Errorf("after up: %d lines, want 7", n)
	}
	if want := "first\nsecond\nfirst\nsecond\nfirst\nsecond\nthird"; afterUp != want {
		t.Errorf("buffer = %q, want %q", afterUp, want)
	}
}
