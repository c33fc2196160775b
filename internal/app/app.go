// internal/app/app.go
package app

import (
	"fmt"

	"github.com/bethropolis/dupline/internal/buffer"
	"github.com/bethropolis/dupline/internal/commands"
	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/core"
	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/input"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/plugin"
	"github.com/bethropolis/dupline/internal/statusbar"
	"github.com/bethropolis/dupline/internal/tui"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Options configures NewApp.
type Options struct {
	FilePath string
	// Config is the loaded configuration; nil uses the defaults.
	Config *config.Config
	// ConfigPath is where settings changes are saved. Empty keeps them in
	// memory.
	ConfigPath string
	// Watch reloads the settings when ConfigPath changes on disk.
	Watch bool
	// Screen enables the interactive view. Nil runs headless.
	Screen tcell.Screen
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	editor         *core.Editor
	store          *config.Store
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	registry       *commands.Registry
	inputProcessor *input.InputProcessor
	editorAPI      plugin.EditorAPI
	tuiManager     *tui.TUI // nil when headless
	filePath       string
	viewY          int

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	buf := buffer.NewSliceBuffer()
	if opts.FilePath != "" {
		if err := buf.Load(opts.FilePath); err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.FilePath, err)
		}
	}

	editor := core.NewEditor(buf)
	editor.SetMaxHistory(cfg.Editor.MaxHistory)
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	store := config.NewStore(cfg, opts.ConfigPath)
	store.SetEventManager(eventManager)

	a := &App{
		editor:         editor,
		store:          store,
		statusBar:      statusbar.New(statusbar.DefaultConfig()),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		registry:       commands.NewRegistry(),
		inputProcessor: input.NewInputProcessor(cfg.Editor.Keys),
		filePath:       opts.FilePath,
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	a.editorAPI = newEditorAPI(a)
	a.applyIndicatorStyle()

	if opts.Screen != nil {
		t, err := tui.NewWithScreen(opts.Screen)
		if err != nil {
			return nil, fmt.Errorf("TUI initialization failed: %w", err)
		}
		a.tuiManager = t
	}

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	eventManager.Subscribe(event.TypeSettingsChanged, a.handleSettingsChanged)

	commands.RegisterAppCommands(a.registry, a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("App: %v", err)
	}

	if opts.Watch {
		if err := store.Watch(); err != nil {
			logger.Warnf("App: settings will not reload: %v", err)
		}
	}

	a.updateStatusBarContent()
	eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	return a, nil
}

// Editor returns the active editor.
func (a *App) Editor() *core.Editor { return a.editor }

// Settings returns the live [dupline] settings.
func (a *App) Settings() config.Settings { return a.store.Settings() }

// Store returns the settings store.
func (a *App) Store() *config.Store { return a.store }

// StatusBar returns the status bar component.
func (a *App) StatusBar() *statusbar.StatusBar { return a.statusBar }

// EventManager returns the application's event bus.
func (a *App) EventManager() *event.Manager { return a.eventManager }

// Commands returns the registered command ids.
func (a *App) Commands() []string { return a.registry.IDs() }

// RunCommand executes a registered command by id.
func (a *App) RunCommand(id string) error {
	err := a.registry.Run(id)
	if err != nil {
		a.SetStatusMessage("%v", err)
	}
	a.requestRedraw()
	return err
}

// recounter is implemented by plugins that can refresh the occurrence
// indicator synchronously.
type recounter interface {
	Recount()
}

// RefreshOccurrences recounts the occurrence indicator now instead of
// waiting for the debounce window.
func (a *App) RefreshOccurrences() {
	for _, name := range a.pluginManager.Names() {
		p, _ := a.pluginManager.GetPlugin(name)
		if r, ok := p.(recounter); ok {
			r.Recount()
		}
	}
}

// SetSelections replaces the editor's selections.
func (a *App) SetSelections(sels []types.Selection) {
	a.editor.SetSelections(sels)
}

// Undo, Redo and Save serve the built-in commands.
func (a *App) Undo() bool { return a.editor.Undo() }
func (a *App) Redo() bool { return a.editor.Redo() }

func (a *App) Save() error {
	return a.editor.SaveBuffer()
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

// Close shuts down plugins and stops the settings watcher.
func (a *App) Close() error {
	a.pluginManager.ShutdownPlugins()
	err := a.store.Close()
	if a.tuiManager != nil {
		a.tuiManager.Close()
		a.tuiManager = nil
	}
	return err
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleSelectionChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionChangedData); ok && len(data.Selections) > 0 {
		a.statusBar.SetCursorInfo(data.Selections[len(data.Selections)-1].Head, len(data.Selections))
	}
	a.requestRedraw()
	return false
}

func (a *App) handleBufferModified(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

func (a *App) handleSettingsChanged(e event.Event) bool {
	a.applyIndicatorStyle()
	a.requestRedraw()
	return false
}

func (a *App) applyIndicatorStyle() {
	s := a.store.Settings()
	a.statusBar.SetIndicatorStyle(s.Color, s.FontSize > config.DefaultFontSize)
}

// setOccurrenceStatus publishes the counter to the status bar.
func (a *App) setOccurrenceStatus(status occurrence.Status) {
	a.statusBar.SetOccurrences(status)
	a.requestRedraw()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	sels := a.editor.ListSelections()
	a.statusBar.SetCursorInfo(sels[len(sels)-1].Head, len(sels))
	a.requestRedraw()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
