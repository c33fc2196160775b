package dupline

import (
	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/types"
)

// Command ids.
const (
	CmdDuplicateLineDown      = "duplicate-line"
	CmdDuplicateLineUp        = "duplicate-line-up"
	CmdDuplicateSelectionDown = "duplicate-selection-down"
	CmdDuplicateSelectionUp   = "duplicate-selection-up"
	CmdDuplicateRight         = "duplicate-line-right"
	CmdDuplicateLeft          = "duplicate-line-left"
	CmdDuplicateRightDown     = "duplicate-line-right-down"
	CmdMoveRight              = "directional-move-right"
	CmdMoveLeft               = "directional-move-left"
	CmdAddNextOccurrence      = "select-next-occurence"
	CmdSelectAllOccurrences   = "select-all-occurence"
	CmdToggleMatchCase        = "toggle-match-case"
)

type kind int

const (
	kindDuplicate kind = iota
	kindMove
	kindAddNext
	kindSelectAll
)

// commandDef describes one settings-gated command.
type commandDef struct {
	id        string
	name      string
	kind      kind
	direction types.Direction
	enabled   func(s config.Settings) bool
}

var commandTable = []commandDef{
	{CmdDuplicateLineDown, "Duplicate Line Down", kindDuplicate, types.Down,
		func(s config.Settings) bool { return s.LineDown }},
	{CmdDuplicateLineUp, "Duplicate Line Up", kindDuplicate, types.Up,
		func(s config.Settings) bool { return s.LineUp }},
	{CmdDuplicateSelectionDown, "Duplicate Selection Down", kindDuplicate, types.SelectionDown,
		func(s config.Settings) bool { return s.SelectionDown }},
	{CmdDuplicateSelectionUp, "Duplicate Selection Up", kindDuplicate, types.SelectionUp,
		func(s config.Settings) bool { return s.SelectionUp }},
	{CmdDuplicateRight, "Duplicate Selection Right", kindDuplicate, types.Right,
		func(s config.Settings) bool { return s.SelectionRight }},
	{CmdDuplicateLeft, "Duplicate Selection Left", kindDuplicate, types.Left,
		func(s config.Settings) bool { return s.SelectionLeft }},
	{CmdDuplicateRightDown, "Duplicate Selection Right/Line Down", kindDuplicate, types.RightDown,
		func(s config.Settings) bool { return s.MixRightDown }},
	{CmdMoveRight, "Move Right", kindMove, types.Right,
		func(s config.Settings) bool { return s.MoveRight }},
	{CmdMoveLeft, "Move Left", kindMove, types.Left,
		func(s config.Settings) bool { return s.MoveLeft }},
	{CmdAddNextOccurrence, "Add next occurrence", kindAddNext, 0,
		func(s config.Settings) bool { return s.AddNextOcc }},
	{CmdSelectAllOccurrences, "Select all occurrences", kindSelectAll, 0,
		func(s config.Settings) bool { return s.SelAllOcc }},
}

// CommandIDs lists the settings-gated command ids in registration order.
func CommandIDs() []string {
	ids := make([]string, len(commandTable))
	for i, def := range commandTable {
		ids[i] = def.id
	}
	return ids
}
