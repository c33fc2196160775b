package move

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

func apply(text string, edits []types.Edit) string {
	lines := strings.Split(text, "\n")
	offset := func(p types.Position) int {
		off := 0
		for i := 0; i < p.Line; i++ {
			off += len([]rune(lines[i])) + 1
		}
		return off + p.Col
	}
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		fa, fb := offset(edits[order[a]].From), offset(edits[order[b]].From)
		if fa != fb {
			return fa > fb
		}
		return order[a] > order[b]
	})

	runes := []rune(text)
	for _, i := range order {
		from, to := offset(edits[i].From), offset(edits[i].To)
		out := append([]rune{}, runes[:from]...)
		out = append(out, []rune(edits[i].Text)...)
		runes = append(out, runes[to:]...)
	}
	return string(runes)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sel      types.Selection
		dir      types.Direction
		wantText string
		wantSel  types.Selection
	}{
		{"right swaps with next char", "ab", sel(0, 0, 0, 1), types.Right, "ba", sel(0, 1, 0, 2)},
		{"left swaps with previous char", "xab", sel(0, 1, 0, 3), types.Left, "abx", sel(0, 0, 0, 2)},
		{"left keeps a backward drag", "xab", sel(0, 3, 0, 1), types.Left, "abx", sel(0, 2, 0, 0)},
		{"left at line start joins lines", "ab\ncd", sel(1, 0, 1, 1), types.Left, "abc\nd", sel(0, 2, 0, 3)},
		{"right at line end splits lines", "ab\ncd", sel(0, 1, 0, 2), types.Right, "a\nbcd", sel(1, 0, 1, 1)},
		{"left over two lines", "xab\ncd", sel(0, 1, 1, 1), types.Left, "ab\ncxd", sel(0, 0, 1, 1)},
		{"right over two lines", "ab\ncdx", sel(0, 1, 1, 2), types.Right, "axb\ncd", sel(0, 2, 1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Move(selection.SplitLines(tt.text), []types.Selection{tt.sel}, tt.dir)
			if len(tx.Edits) != 2 {
				t.Fatalf("got %d edits, want a delete and an insert", len(tx.Edits))
			}
			if got := apply(tt.text, tx.Edits); got != tt.wantText {
				t.Errorf("buffer = %q, want %q", got, tt.wantText)
			}
			if len(tx.Selections) != 1 || tx.Selections[0] != tt.wantSel {
				t.Errorf("selections = %v, want %v", tx.Selections, tt.wantSel)
			}
			if !strings.HasPrefix(tx.Origin, OriginPrefix) {
				t.Errorf("origin = %q", tx.Origin)
			}
		})
	}
}

func TestMoveNoops(t *testing.T) {
	tests := []struct {
		name string
		text string
		sels []types.Selection
		dir  types.Direction
	}{
		{"left at document start", "ab", []types.Selection{sel(0, 0, 0, 1)}, types.Left},
		{"right at document end", "ab", []types.Selection{sel(0, 1, 0, 2)}, types.Right},
		{"right at end of last line", "ab\ncd", []types.Selection{sel(1, 0, 1, 2)}, types.Right},
		{"cursor has nothing to move", "ab", []types.Selection{types.Cursor(pos(0, 1))}, types.Left},
		{"vertical direction", "ab", []types.Selection{sel(0, 0, 0, 1)}, types.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Move(selection.SplitLines(tt.text), tt.sels, tt.dir)
			if !tx.IsEmpty() {
				t.Errorf("expected no edits, got %v", tx.Edits)
			}
		})
	}
}

func TestMoveSeveralSelections(t *testing.T) {
	text := "xa yb"
	sels := []types.Selection{sel(0, 1, 0, 2), sel(0, 4, 0, 5)}
	tx := Move(selection.SplitLines(text), sels, types.Left)

	if got := apply(text, tx.Edits); got != "ax by" {
		t.Errorf("buffer = %q, want %q", got, "ax by")
	}
	want := []types.Selection{sel(0, 0, 0, 1), sel(0, 3, 0, 4)}
	for i := range want {
		if tx.Selections[i] != want[i] {
			t.Errorf("selection %d = %v, want %v", i, tx.Selections[i], want[i])
		}
	}
}
