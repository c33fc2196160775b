package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bethropolis/dupline/internal/event"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// Store guards the live configuration, writes [dupline] changes back to the
// TOML file and reloads it when the file changes on disk.
type Store struct {
	mu          sync.RWMutex
	path        string
	cfg         Config
	lastWritten []byte

	em        *event.Manager
	watcher   *fsnotify.Watcher
	debouncer utils.Debouncer
	done      chan struct{}
}

// NewStore creates a store around a copy of cfg. An empty path keeps the
// settings in memory only.
func NewStore(cfg *Config, path string) *Store {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &Store{path: path, cfg: *cfg}
}

// SetEventManager sets the manager TypeSettingsChanged is dispatched on.
func (s *Store) SetEventManager(em *event.Manager) {
	s.mu.Lock()
	s.em = em
	s.mu.Unlock()
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Settings returns a copy of the [dupline] table.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Dupline
}

// Config returns a copy of the whole configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to the settings, saves them when the store has a file,
// and notifies subscribers.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	next := s.cfg.Dupline
	fn(&next)
	next.validate()
	s.cfg.Dupline = next
	s.mu.Unlock()

	var err error
	if s.path != "" {
		err = s.Save()
	}
	s.notify("update")
	return err
}

// Save writes the configuration to the store's file.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := Encode(&s.cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config file '%s': %w", s.path, err)
	}
	s.lastWritten = data
	logger.DebugTagf("config", "Settings saved to %s", s.path)
	return nil
}

// Reload re-reads the file on top of the defaults. Our own writes are
// recognized and skipped.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", s.path, err)
	}

	s.mu.RLock()
	own := s.lastWritten != nil && bytes.Equal(data, s.lastWritten)
	s.mu.RUnlock()
	if own {
		logger.DebugTagf("config", "Ignoring reload of our own write")
		return nil
	}

	cfg := NewDefaultConfig()
	if err := decodeBytes(s.path, data, cfg, true); err != nil {
		return err
	}
	cfg.validate()

	s.mu.Lock()
	s.cfg = *cfg
	s.mu.Unlock()

	logger.InfoTagf("config", "Settings reloaded from %s", s.path)
	s.notify("file")
	return nil
}

func (s *Store) notify(source string) {
	s.mu.RLock()
	em := s.em
	s.mu.RUnlock()
	if em != nil {
		em.Dispatch(event.TypeSettingsChanged, event.SettingsChangedData{Source: source})
	}
}

// Watch starts reloading the settings when the file is written. The
// directory is watched so editors that replace the file are seen too.
func (s *Store) Watch() error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		watcher.Close()
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	name := filepath.Clean(s.path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.debouncer.Debounce(ReloadDelay, func() {
					if err := s.Reload(); err != nil {
						logger.WarnTagf("config", "Reload failed: %v", err)
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WarnTagf("config", "Watcher error: %v", err)
			case <-done:
				return
			}
		}
	}()
	logger.DebugTagf("config", "Watching %s", s.path)
	return nil
}

// Close stops the watcher and any pending reload.
func (s *Store) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	done := s.done
	s.watcher = nil
	s.done = nil
	s.mu.Unlock()

	s.debouncer.Stop()
	if done != nil {
		close(done)
	}
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}
