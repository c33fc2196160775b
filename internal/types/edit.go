package types

// Edit replaces the text between From and To with Text.
// An empty Text with From != To is a deletion; From == To is a pure insertion.
type Edit struct {
	From Position
	To   Position
	Text string
}

// IsNoop reports whether applying the edit would change nothing.
func (e Edit) IsNoop() bool {
	return e.From.Equal(e.To) && e.Text == ""
}

// Transaction groups edits and the resulting selections so the host can
// commit them as one undo step.
//
// Every edit addresses the document as it was before the transaction.
// A nil Selections slice asks the host to map the current selections
// through the edits instead.
type Transaction struct {
	Edits      []Edit
	Selections []Selection
	Origin     string
}

// IsEmpty reports whether the transaction carries no edits.
func (t Transaction) IsEmpty() bool {
	return len(t.Edits) == 0
}
