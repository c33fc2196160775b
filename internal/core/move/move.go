// Package move shifts selected text one character left or right.
package move

import (
	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
)

// OriginPrefix prefixes the origin of every move transaction.
const OriginPrefix = "DirectionalMove_"

// Move moves each non-empty selection one character in dir by deleting the
// neighbouring character and reinserting it on the far side. Only Left and
// Right are meaningful; other directions yield an empty transaction.
func Move(doc selection.Document, selections []types.Selection, dir types.Direction) types.Transaction {
	if dir != types.Left && dir != types.Right {
		logger.DebugTagf("move", "ignoring direction %v", dir)
		return types.Transaction{}
	}

	tx := types.Transaction{Origin: OriginPrefix + dir.String()}
	for _, sel := range selections {
		if selection.IsEmpty(sel) {
			continue
		}
		r := selection.ToRange(sel, true)

		var (
			del, ins types.Edit
			moved    types.Range
			ok       bool
		)
		if dir == types.Left {
			del, ins, moved, ok = left(doc, r)
		} else {
			del, ins, moved, ok = right(doc, r)
		}
		if !ok {
			continue
		}

		tx.Edits = append(tx.Edits, del, ins)
		if selection.IsForward(sel) {
			tx.Selections = append(tx.Selections, types.Selection{Anchor: moved.From, Head: moved.To})
		} else {
			tx.Selections = append(tx.Selections, types.Selection{Anchor: moved.To, Head: moved.From})
		}
	}

	if tx.IsEmpty() {
		return types.Transaction{}
	}
	logger.DebugTagf("move", "%s: %d edit(s)", tx.Origin, len(tx.Edits))
	return tx
}

// left removes the character before r, or the newline joining r's first
// line to the previous one, and reinserts it after r.
func left(doc selection.Document, r types.Range) (del, ins types.Edit, moved types.Range, ok bool) {
	if r.From.Line == 0 && r.From.Col == 0 {
		return del, ins, moved, false
	}
	sameLine := r.From.Line == r.To.Line

	if r.From.Col == 0 {
		prevLen := selection.LineLength(doc, r.From.Line-1)
		del = types.Edit{From: types.Position{Line: r.From.Line - 1, Col: prevLen}, To: r.From}
		ins = types.Edit{From: r.To, To: r.To, Text: "\n"}
		moved.From = del.From
		moved.To = types.Position{Line: r.To.Line - 1, Col: r.To.Col}
		if sameLine {
			moved.To.Col = prevLen + r.To.Col - r.From.Col
		}
		return del, ins, moved, true
	}

	del = types.Edit{From: types.Position{Line: r.From.Line, Col: r.From.Col - 1}, To: r.From}
	ins = types.Edit{From: r.To, To: r.To, Text: selection.TextInRange(doc, types.Range{From: del.From, To: del.To})}
	moved.From = del.From
	moved.To = r.To
	if sameLine {
		moved.To.Col--
	}
	return del, ins, moved, true
}

// right removes the character after r, or the newline ending r's last
// line, and reinserts it before r.
func right(doc selection.Document, r types.Range) (del, ins types.Edit, moved types.Range, ok bool) {
	lineLen := selection.LineLength(doc, r.To.Line)
	last := doc.LineCount() - 1
	if r.To.Line >= last && r.To.Col >= lineLen {
		return del, ins, moved, false
	}
	sameLine := r.From.Line == r.To.Line

	if r.To.Col >= lineLen {
		del = types.Edit{From: r.To, To: types.Position{Line: r.To.Line + 1, Col: 0}}
		ins = types.Edit{From: r.From, To: r.From, Text: "\n"}
		moved.From = types.Position{Line: r.From.Line + 1, Col: 0}
		moved.To = types.Position{Line: r.To.Line + 1, Col: r.To.Col}
		if sameLine {
			moved.To.Col = r.To.Col - r.From.Col
		}
		return del, ins, moved, true
	}

	del = types.Edit{From: r.To, To: types.Position{Line: r.To.Line, Col: r.To.Col + 1}}
	ins = types.Edit{From: r.From, To: r.From, Text: selection.TextInRange(doc, types.Range{From: del.From, To: del.To})}
	moved.From = types.Position{Line: r.From.Line, Col: r.From.Col + 1}
	moved.To = r.To
	if sameLine {
		moved.To.Col++
	}
	return del, ins, moved, true
}
