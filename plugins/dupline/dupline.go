// Package dupline registers the duplication, move and occurrence commands
// and keeps the occurrence indicator up to date.
package dupline

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/core/duplicate"
	"github.com/bethropolis/dupline/internal/core/find"
	"github.com/bethropolis/dupline/internal/core/move"
	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/plugin"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/bethropolis/dupline/internal/utils"
)

// Ensure Plugin implements plugin.Plugin
var _ plugin.Plugin = (*Plugin)(nil)

// FlashDuration is how long the occurrence flash stays visible.
const FlashDuration = time.Second

// Plugin wires the core operations to the host.
type Plugin struct {
	api plugin.EditorAPI

	// Counter is exposed so hosts and tests can swap its clock.
	Counter *occurrence.Counter

	mu         sync.Mutex
	registered map[string]bool
	watch      func()
	window     time.Duration
	flash      utils.Debouncer
	closed     bool
}

// New creates a new instance of the plugin.
func New() *Plugin {
	return &Plugin{
		Counter:    occurrence.NewCounter(),
		registered: make(map[string]bool),
	}
}

// Name returns the unique name of the plugin.
func (p *Plugin) Name() string {
	return "dupline"
}

// Initialize registers the enabled commands and subscribes to selection
// and settings changes.
func (p *Plugin) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if err := api.RegisterCommand(plugin.Command{
		ID:   CmdToggleMatchCase,
		Name: "Toggle occurrence case sensitivity",
		Run:  p.ToggleCaseSensitivity,
	}); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", CmdToggleMatchCase, err)
	}

	if err := p.applySettings(api.Settings()); err != nil {
		return err
	}

	api.SubscribeEvent(event.TypeSelectionChanged, func(e event.Event) bool {
		p.selectionChanged()
		return false
	})
	api.SubscribeEvent(event.TypeSettingsChanged, func(e event.Event) bool {
		if err := p.applySettings(p.api.Settings()); err != nil {
			logger.Warnf("dupline: applying settings: %v", err)
		}
		p.selectionChanged()
		return false
	})
	return nil
}

// Shutdown stops pending counter and flash timers.
func (p *Plugin) Shutdown() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.Counter.Stop()
	p.flash.Stop()
	return nil
}

// applySettings (un)registers commands to follow their switches and
// reconfigures the counter.
func (p *Plugin) applySettings(s config.Settings) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, def := range commandTable {
		want := def.enabled(s)
		have := p.registered[def.id]
		switch {
		case want && !have:
			if err := p.api.RegisterCommand(p.command(def)); err != nil {
				logger.Warnf("dupline: register %s: %v", def.id, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			p.registered[def.id] = true
		case !want && have:
			p.api.UnregisterCommand(def.id)
			delete(p.registered, def.id)
		}
	}

	p.Counter.Configure(s.ShowOccurrences, s.OccurrenceMinLength, s.OccurrenceMinCount)
	window := time.Duration(s.DebounceMillis) * time.Millisecond
	if p.watch == nil || window != p.window {
		p.window = window
		p.watch = p.Counter.Watch(window, p.snapshot, p.publish)
	}
	logger.DebugTagf("dupline", "settings applied: %d command(s) registered", len(p.registered))
	return firstErr
}

// Registered reports whether the command id is currently registered.
func (p *Plugin) Registered(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registered[id]
}

func (p *Plugin) command(def commandDef) plugin.Command {
	return plugin.Command{
		ID:   def.id,
		Name: def.name,
		Run:  func() error { return p.run(def) },
	}
}

// run executes one command against the active editor. Without an editor
// it does nothing.
func (p *Plugin) run(def commandDef) error {
	ed, ok := p.api.ActiveEditor()
	if !ok {
		logger.DebugTagf("dupline", "%s: no active editor", def.id)
		return nil
	}
	settings := p.api.Settings()

	switch def.kind {
	case kindDuplicate:
		tx := duplicate.Duplicate(ed, ed.ListSelections(), def.direction,
			duplicate.Options{AddSpaceBetween: settings.AddSpaceBetween})
		return p.apply(ed, def.id, tx)
	case kindMove:
		return p.apply(ed, def.id, move.Move(ed, ed.ListSelections(), def.direction))
	case kindAddNext:
		if find.AddNext(ed, settings.MatchCase) {
			p.scheduleUnflash(ed)
		}
	case kindSelectAll:
		if find.SelectAll(ed, settings.MatchCase) {
			p.scheduleUnflash(ed)
		}
	}
	return nil
}

func (p *Plugin) apply(ed plugin.Editor, id string, tx types.Transaction) error {
	if tx.IsEmpty() {
		logger.DebugTagf("dupline", "%s: nothing to do", id)
		return nil
	}
	if err := ed.ApplyTransaction(tx); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	return nil
}

// scheduleUnflash removes the occurrence flash after FlashDuration. A new
// flash restarts the delay.
func (p *Plugin) scheduleUnflash(ed plugin.Editor) {
	h, ok := ed.(find.Highlighter)
	if !ok {
		return
	}
	p.flash.Debounce(FlashDuration, func() { h.RemoveHighlights(find.FlashClass) })
}

// ToggleCaseSensitivity flips the match_case setting. The settings change
// event then recounts with the new policy.
func (p *Plugin) ToggleCaseSensitivity() error {
	var now bool
	err := p.api.UpdateSettings(func(s *config.Settings) {
		s.MatchCase = !s.MatchCase
		now = s.MatchCase
	})
	if err != nil {
		return fmt.Errorf("toggle match case: %w", err)
	}
	if now {
		p.api.SetStatusMessage("Occurrences: match case")
	} else {
		p.api.SetStatusMessage("Occurrences: ignore case")
	}
	return nil
}

// Recount drops any pending debounced count and counts right away.
func (p *Plugin) Recount() {
	p.Counter.Stop()
	p.selectionChanged()
}

func (p *Plugin) selectionChanged() {
	p.mu.Lock()
	watch, closed := p.watch, p.closed
	p.mu.Unlock()
	if watch == nil || closed {
		return
	}
	watch()
}

// snapshot freezes the active editor's text and primary selection.
func (p *Plugin) snapshot() (occurrence.Snapshot, bool) {
	ed, ok := p.api.ActiveEditor()
	if !ok {
		return occurrence.Snapshot{}, false
	}
	return occurrence.Snapshot{
		SelectionText: ed.SelectionText(),
		Doc:           selection.SplitLines(selection.Text(ed)),
		CaseSensitive: p.api.Settings().MatchCase,
	}, true
}

func (p *Plugin) publish(status occurrence.Status) {
	p.api.SetOccurrenceStatus(status)
	p.api.DispatchEvent(event.TypeOccurrencesCounted, event.OccurrencesCountedData{
		Count:         status.Count,
		CaseSensitive: status.CaseSensitive,
		Visible:       status.Visible,
	})
}
