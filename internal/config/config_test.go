package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/dupline/internal/event"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dupline != DefaultSettings() {
		t.Errorf("Load() settings = %+v, want defaults", cfg.Dupline)
	}
	if cfg.Editor.MaxHistory != DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", cfg.Editor.MaxHistory, DefaultMaxHistory)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[logger]
log_level = "debug"

[editor]
max_history = 5

[editor.keys]
"ctrl+d" = "duplicate-line"

[dupline]
add_space_between = false
mix_right_down = true
match_case = true
font_size = 9.0
occurrence_min_length = 0
debounce_ms = 50
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logger.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Logger.LogLevel)
	}
	if cfg.Editor.MaxHistory != 5 {
		t.Errorf("MaxHistory = %d, want 5", cfg.Editor.MaxHistory)
	}
	if got := cfg.Editor.Keys["ctrl+d"]; got != "duplicate-line" {
		t.Errorf("Keys[ctrl+d] = %q, want duplicate-line", got)
	}
	s := cfg.Dupline
	if s.AddSpaceBetween || !s.MixRightDown || !s.MatchCase {
		t.Errorf("switches not decoded: %+v", s)
	}
	// Keys absent from the file keep their defaults.
	if !s.LineDown || !s.ShowOccurrences {
		t.Errorf("defaults lost: %+v", s)
	}
	if s.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want reset to %v", s.FontSize, DefaultFontSize)
	}
	if s.OccurrenceMinLength != DefaultOccurrenceMinLength {
		t.Errorf("OccurrenceMinLength = %d, want reset to %d", s.OccurrenceMinLength, DefaultOccurrenceMinLength)
	}
	if s.DebounceMillis != 50 {
		t.Errorf("DebounceMillis = %d, want 50", s.DebounceMillis)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[dupline\nline_down = ")
	cfg, err := Load(path, nil)
	if err == nil {
		t.Fatal("Load() expected a parse error")
	}
	if cfg == nil || cfg.Dupline.Color != DefaultColor {
		t.Errorf("Load() should still return defaults, got %+v", cfg)
	}
}

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b,,c ", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		got := splitCommaList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitCommaList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitCommaList(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestStoreUpdateSavesAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	store := NewStore(NewDefaultConfig(), path)
	em := event.NewManager()
	store.SetEventManager(em)

	var sources []string
	em.Subscribe(event.TypeSettingsChanged, func(e event.Event) bool {
		sources = append(sources, e.Data.(event.SettingsChangedData).Source)
		return false
	})

	if err := store.Update(func(s *Settings) { s.MatchCase = true; s.LineUp = false }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !store.Settings().MatchCase || store.Settings().LineUp {
		t.Errorf("Settings() = %+v, update not applied", store.Settings())
	}
	if len(sources) != 1 || sources[0] != "update" {
		t.Errorf("notifications = %v, want [update]", sources)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() of saved file error = %v", err)
	}
	if !cfg.Dupline.MatchCase || cfg.Dupline.LineUp {
		t.Errorf("saved settings = %+v", cfg.Dupline)
	}
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := NewStore(NewDefaultConfig(), path)
	if err := store.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	em := event.NewManager()
	store.SetEventManager(em)
	reloads := 0
	em.Subscribe(event.TypeSettingsChanged, func(e event.Event) bool {
		if e.Data.(event.SettingsChangedData).Source == "file" {
			reloads++
		}
		return false
	})

	// Our own write is not a change.
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reloads != 0 {
		t.Errorf("reload of own write notified %d times", reloads)
	}

	writeFile(t, path, "[dupline]\nmove_left = false\n")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if store.Settings().MoveLeft {
		t.Error("MoveLeft should be false after reload")
	}
	if reloads != 1 {
		t.Errorf("reloads = %d, want 1", reloads)
	}
}

func TestStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := NewStore(NewDefaultConfig(), path)
	em := event.NewManager()
	store.SetEventManager(em)

	changed := make(chan struct{}, 4)
	em.Subscribe(event.TypeSettingsChanged, func(e event.Event) bool {
		changed <- struct{}{}
		return false
	})

	if err := store.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer store.Close()

	writeFile(t, path, "[dupline]\nselection_up = false\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if store.Settings().SelectionUp {
		t.Error("SelectionUp should be false after watched reload")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewStore(nil, "")
	if err := store.Update(func(s *Settings) { s.FontSize = 99 }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if store.Settings().FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want validated default", store.Settings().FontSize)
	}
	if err := store.Watch(); err != nil {
		t.Errorf("Watch() without a path error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
