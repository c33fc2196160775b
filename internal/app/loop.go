package app

import (
	"errors"

	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/input"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/tui"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
)

// ErrHeadless is returned by Run when the app has no screen.
var ErrHeadless = errors.New("app has no screen")

// Run starts the interactive event and drawing loops. It returns when the
// user quits.
func (a *App) Run() error {
	if a.tuiManager == nil {
		return ErrHeadless
	}

	events := make(chan tcell.Event)
	go a.eventLoop(events)

	a.statusBar.SetTemporaryMessage("dupline - Ctrl+S Save | ESC Quit")
	a.draw()

	// Events are handled here so drawing and handlers share one goroutine.
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				close(a.quit)
			}
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop forwards terminal events until the screen is finalized or
// the app quits.
func (a *App) eventLoop(events chan<- tcell.Event) {
	defer close(events)
	t := a.tuiManager
	for {
		ev := t.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent dispatches one terminal event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.requestRedraw()
	case *tcell.EventKey:
		return a.HandleKey(ev)
	case *tcell.EventMouse:
		a.HandleMouse(ev)
	}
	return false
}

// HandleKey processes one key event and reports whether it asks to quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	action := a.inputProcessor.ProcessEvent(ev)
	switch action.Action {
	case input.ActionQuit:
		return true
	case input.ActionRunCommand:
		if err := a.RunCommand(action.Command); err != nil {
			logger.Debugf("App: command %s: %v", action.Command, err)
		}
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionExtendUp, input.ActionExtendDown, input.ActionExtendLeft, input.ActionExtendRight:
		a.moveCursor(action.Action)
	}
	return false
}

// HandleMouse processes a mouse event. A left click on the occurrence
// indicator toggles case sensitivity; a click in the text places the cursor.
func (a *App) HandleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 || a.tuiManager == nil {
		return
	}
	x, y := ev.Position()
	width, height := a.tuiManager.Size()

	if a.statusBar.HitIndicator(x, y, height) {
		if err := a.RunCommand("toggle-match-case"); err != nil {
			logger.Debugf("App: toggle from status bar: %v", err)
		}
		return
	}
	if y >= height-config.StatusBarHeight {
		return
	}

	line := y + a.viewY
	if line >= a.editor.LineCount() {
		line = a.editor.LastLine()
	}
	col := tui.ColumnAt(a.editor.GetLine(line), x, a.editor.LineCount(), width)
	a.editor.SetSelections([]types.Selection{types.Cursor(types.Position{Line: line, Col: col})})
}

// moveCursor moves (or with an extend action, grows) the primary selection
// and drops the secondary ones.
func (a *App) moveCursor(action input.Action) {
	sels := a.editor.ListSelections()
	primary := sels[len(sels)-1]
	head := primary.Head

	switch action {
	case input.ActionMoveUp, input.ActionExtendUp:
		if head.Line > 0 {
			head.Line--
		}
	case input.ActionMoveDown, input.ActionExtendDown:
		if head.Line < a.editor.LastLine() {
			head.Line++
		}
	case input.ActionMoveLeft, input.ActionExtendLeft:
		if head.Col > 0 {
			head.Col--
		} else if head.Line > 0 {
			head.Line--
			head.Col = a.editor.LineLength(head.Line)
		}
	case input.ActionMoveRight, input.ActionExtendRight:
		if head.Col < a.editor.LineLength(head.Line) {
			head.Col++
		} else if head.Line < a.editor.LastLine() {
			head.Line++
			head.Col = 0
		}
	}
	head.Col = min(head.Col, a.editor.LineLength(head.Line))

	extend := action == input.ActionExtendUp || action == input.ActionExtendDown ||
		action == input.ActionExtendLeft || action == input.ActionExtendRight
	next := types.Cursor(head)
	if extend {
		next = types.Selection{Anchor: primary.Anchor, Head: head}
	}
	a.editor.SetSelections([]types.Selection{next})
}

// draw redraws the text area, the status bar and the cursor.
func (a *App) draw() {
	t := a.tuiManager
	if t == nil {
		return
	}
	width, height := t.Size()
	a.scrollToCursor(height - config.StatusBarHeight)

	t.Clear()
	tui.DrawBuffer(t, a.editor, a.viewY, config.StatusBarHeight)
	a.statusBar.Draw(t.GetScreen(), width, height)
	tui.DrawCursor(t, a.editor, a.viewY, config.StatusBarHeight)
	t.Show()
}

// scrollToCursor keeps the primary cursor inside the text area.
func (a *App) scrollToCursor(viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	sels := a.editor.ListSelections()
	line := sels[len(sels)-1].Head.Line
	switch {
	case line < a.viewY:
		a.viewY = line
	case line >= a.viewY+viewHeight:
		a.viewY = line - viewHeight + 1
	}
}
