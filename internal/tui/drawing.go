// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/dupline/internal/core/find"
	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Styles used for the text area.
var (
	StyleDefault    = tcell.StyleDefault
	StyleLineNumber = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleSelection  = tcell.StyleDefault.Reverse(true)
	StyleFlash      = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
)

// View is what DrawBuffer reads from the editor.
type View interface {
	selection.Document
	ListSelections() []types.Selection
	Highlights() []types.HighlightRegion
}

// isPositionWithin checks if pos is within [start, end).
func isPositionWithin(pos, start, end types.Position) bool {
	return !pos.Less(start) && pos.Less(end)
}

func inAny(pos types.Position, ranges []types.Range) bool {
	for _, r := range ranges {
		if isPositionWithin(pos, r.From, r.To) {
			return true
		}
	}
	return false
}

// DrawBuffer draws lines viewY.. into the rows above the status bar, with a
// line number gutter. Flash highlights win over selections.
func DrawBuffer(t *TUI, view View, viewY, statusBarHeight int) {
	width, height := t.Size()
	viewHeight := height - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lineCount := view.LineCount()
	maxDigits, gutterWidth := gutter(lineCount, width)

	sels := view.ListSelections()
	selected := make([]types.Range, 0, len(sels))
	for _, s := range sels {
		selected = append(selected, selection.ToRange(s, true))
	}
	var flashing []types.Range
	for _, h := range view.Highlights() {
		if h.Class == find.FlashClass {
			flashing = append(flashing, h.Range)
		}
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, StyleDefault)
		}
		if lineIdx >= lineCount {
			continue
		}

		if gutterWidth > 0 {
			num := fmt.Sprintf("%*d", maxDigits, lineIdx+1)
			for i, r := range num {
				t.screen.SetContent(i, screenY, r, nil, StyleLineNumber)
			}
		}

		gr := uniseg.NewGraphemes(view.GetLine(lineIdx))
		x := gutterWidth
		col := 0
		for gr.Next() {
			runes := gr.Runes()
			w := gr.Width()
			if x+w > width {
				break
			}
			pos := types.Position{Line: lineIdx, Col: col}
			style := StyleDefault
			switch {
			case inAny(pos, flashing):
				style = StyleFlash
			case inAny(pos, selected):
				style = StyleSelection
			}
			t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
			x += w
			col += len(runes)
		}
	}
}

// gutter returns the line number width and the gutter width, 0 when the
// screen is too narrow for one.
func gutter(lineCount, width int) (digits, gutterWidth int) {
	digits = int(math.Log10(float64(max(lineCount, 1)))) + 1
	gutterWidth = digits + 1
	if gutterWidth >= width {
		gutterWidth = 0
	}
	return digits, gutterWidth
}

// visualColumn converts a rune column to a screen column.
func visualColumn(line string, col int) int {
	gr := uniseg.NewGraphemes(line)
	visual, runes := 0, 0
	for gr.Next() && runes < col {
		visual += gr.Width()
		runes += len(gr.Runes())
	}
	return visual
}

// DrawCursor places the terminal cursor on the primary selection's head.
func DrawCursor(t *TUI, view View, viewY, statusBarHeight int) {
	sels := view.ListSelections()
	if len(sels) == 0 {
		t.screen.HideCursor()
		return
	}
	head := sels[len(sels)-1].Head
	width, height := t.Size()
	y := head.Line - viewY
	if y < 0 || y >= height-statusBarHeight {
		t.screen.HideCursor()
		return
	}
	_, gutterWidth := gutter(view.LineCount(), width)
	t.screen.ShowCursor(gutterWidth+visualColumn(view.GetLine(head.Line), head.Col), y)
}

// ColumnAt converts screen column x on a text row to a rune column of line,
// clamped to the line's length.
func ColumnAt(line string, x, lineCount, width int) int {
	_, gutterWidth := gutter(lineCount, width)
	target := x - gutterWidth
	if target <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(line)
	visual, col := 0, 0
	for gr.Next() {
		w := gr.Width()
		if visual+w > target {
			break
		}
		visual += w
		col += len(gr.Runes())
	}
	return col
}
