package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/plugin"
)

// ErrUnknownCommand is returned by Run for ids nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// Registry maps command ids to the commands plugins and the app expose.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]plugin.Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]plugin.Command)}
}

// Register adds cmd. Ids are unique.
func (r *Registry) Register(cmd plugin.Command) error {
	if cmd.ID == "" || cmd.Run == nil {
		return fmt.Errorf("register command %q: id and run function are required", cmd.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[cmd.ID]; exists {
		return fmt.Errorf("register command %q: %w", cmd.ID, plugin.ErrCommandExists)
	}
	r.commands[cmd.ID] = cmd
	logger.DebugTagf("commands", "registered %q", cmd.ID)
	return nil
}

// Unregister removes id. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[id]; exists {
		delete(r.commands, id)
		logger.DebugTagf("commands", "unregistered %q", id)
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[id]
	return ok
}

// Get returns the command registered under id.
func (r *Registry) Get(id string) (plugin.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run executes the command registered under id. The registry lock is not
// held while the command runs, so commands may (un)register others.
func (r *Registry) Run(id string) error {
	cmd, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	logger.DebugTagf("commands", "running %q", id)
	return cmd.Run()
}
