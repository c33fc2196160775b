// internal/input/keymap.go
package input

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/bethropolis/dupline/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// DefaultBindings are the recommended shortcuts, key names to command ids.
var DefaultBindings = map[string]string{
	"shift+alt+down":   "duplicate-line",
	"shift+alt+up":     "duplicate-line-up",
	"ctrl+shift+down":  "duplicate-selection-down",
	"ctrl+shift+up":    "duplicate-selection-up",
	"ctrl+shift+right": "duplicate-line-right",
	"ctrl+shift+left":  "duplicate-line-left",
	"ctrl+alt+down":    "duplicate-line-right-down",
	"alt+right":        "directional-move-right",
	"alt+left":         "directional-move-left",
	"ctrl+d":           "select-next-occurence",
	"ctrl+shift+l":     "select-all-occurence",
	"alt+c":            "toggle-match-case",
	"ctrl+z":           "undo",
	"ctrl+y":           "redo",
	"ctrl+s":           "save",
}

// Key identifies a key press: a special key or a rune, plus modifiers.
type Key struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func (k Key) String() string {
	var parts []string
	if k.Mod&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if k.Mod&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	if k.Mod&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if k.Key == tcell.KeyRune {
		parts = append(parts, string(k.Rune))
	} else {
		for name, key := range keyNames {
			if key == k.Key {
				parts = append(parts, name)
				break
			}
		}
	}
	return strings.Join(parts, "+")
}

var keyNames = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEscape,
	"delete":    tcell.KeyDelete,
	"backspace": tcell.KeyBackspace2,
}

// ParseKey parses names like "ctrl+shift+l" or "alt+right".
func ParseKey(name string) (Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), "+")
	var k Key
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			k.Mod |= tcell.ModCtrl
		case "shift":
			k.Mod |= tcell.ModShift
		case "alt", "meta":
			k.Mod |= tcell.ModAlt
		default:
			return Key{}, fmt.Errorf("key %q: unknown modifier %q", name, mod)
		}
	}

	last := parts[len(parts)-1]
	if key, ok := keyNames[last]; ok {
		k.Key = key
		return k, nil
	}
	runes := []rune(last)
	if len(runes) != 1 {
		return Key{}, fmt.Errorf("key %q: unknown key %q", name, last)
	}
	k.Key = tcell.KeyRune
	k.Rune = runes[0]
	return k, nil
}

// keyOf normalizes a tcell event so it can be looked up: control
// characters become ctrl+letter and upper-case letters typed with a
// modifier become shift+letter.
func keyOf(ev *tcell.EventKey) Key {
	k := Key{Key: ev.Key(), Mod: ev.Modifiers() &^ tcell.ModMeta}
	if ev.Modifiers()&tcell.ModMeta != 0 {
		k.Mod |= tcell.ModAlt
	}

	switch {
	case k.Key >= tcell.KeyCtrlA && k.Key <= tcell.KeyCtrlZ &&
		k.Key != tcell.KeyBackspace && k.Key != tcell.KeyTab && k.Key != tcell.KeyEnter:
		k.Rune = rune('a' + (k.Key - tcell.KeyCtrlA))
		k.Key = tcell.KeyRune
		k.Mod |= tcell.ModCtrl
	case k.Key == tcell.KeyRune:
		k.Rune = ev.Rune()
		if unicode.IsUpper(k.Rune) && k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			k.Rune = unicode.ToLower(k.Rune)
			k.Mod |= tcell.ModShift
		}
	}
	return k
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	commands map[Key]string
}

// NewInputProcessor creates a processor with the default bindings, then
// applies overrides (key name to command id; an empty id unbinds the key).
func NewInputProcessor(overrides map[string]string) *InputProcessor {
	p := &InputProcessor{commands: make(map[Key]string)}
	for name, id := range DefaultBindings {
		if err := p.Bind(name, id); err != nil {
			logger.Warnf("input: default binding: %v", err)
		}
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.Bind(name, overrides[name]); err != nil {
			logger.Warnf("input: ignoring binding: %v", err)
		}
	}
	return p
}

// Bind maps the named key to a command id. An empty id removes the binding.
func (p *InputProcessor) Bind(name, commandID string) error {
	k, err := ParseKey(name)
	if err != nil {
		return err
	}
	if commandID == "" {
		delete(p.commands, k)
		return nil
	}
	p.commands[k] = commandID
	logger.DebugTagf("input", "bound %s to %s", k, commandID)
	return nil
}

// CommandFor returns the command bound to the named key.
func (p *InputProcessor) CommandFor(name string) (string, bool) {
	k, err := ParseKey(name)
	if err != nil {
		return "", false
	}
	id, ok := p.commands[k]
	return id, ok
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	k := keyOf(ev)
	if id, ok := p.commands[k]; ok {
		return ActionEvent{Action: ActionRunCommand, Command: id}
	}

	switch k {
	case Key{Key: tcell.KeyEscape}, Key{Key: tcell.KeyRune, Rune: 'q', Mod: tcell.ModCtrl}:
		return ActionEvent{Action: ActionQuit}
	}

	if k.Mod == tcell.ModNone || k.Mod == tcell.ModShift {
		extend := k.Mod == tcell.ModShift
		switch k.Key {
		case tcell.KeyUp:
			return arrow(ActionMoveUp, ActionExtendUp, extend)
		case tcell.KeyDown:
			return arrow(ActionMoveDown, ActionExtendDown, extend)
		case tcell.KeyLeft:
			return arrow(ActionMoveLeft, ActionExtendLeft, extend)
		case tcell.KeyRight:
			return arrow(ActionMoveRight, ActionExtendRight, extend)
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

func arrow(move, extend Action, shift bool) ActionEvent {
	if shift {
		return ActionEvent{Action: extend}
	}
	return ActionEvent{Action: move}
}
