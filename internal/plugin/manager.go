// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/dupline/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin // Store loaded plugins by name
	order   []string          // Registration order
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		list = append(list, m.plugins[name])
	}
	return list
}

// InitializePlugins calls Initialize on every plugin in registration order.
// A failing plugin is logged and the rest are still initialized; the
// first error is returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	plugins := m.snapshot()

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(plugins))
	var first error
	for _, plugin := range plugins {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			if first == nil {
				first = fmt.Errorf("initialize plugin '%s': %w", plugin.Name(), err)
			}
			continue
		}
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
	}
	return first
}

// ShutdownPlugins calls Shutdown on all registered plugins, last registered first.
func (m *Manager) ShutdownPlugins() {
	plugins := m.snapshot()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(plugins))
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugins[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name. Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names returns the registered plugin names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
