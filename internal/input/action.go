// internal/input/action.go
package input

// Action represents an operation decoded from a key event.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionRunCommand // Runs ActionEvent.Command

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// --- Selection growth (Shift+arrow) ---
	ActionExtendUp
	ActionExtendDown
	ActionExtendLeft
	ActionExtendRight
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action  Action
	Command string // Command id for ActionRunCommand
}
