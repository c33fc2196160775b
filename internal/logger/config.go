// Package logger wraps log/slog with printf helpers and tag, package and
// file filters.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds the logger settings read from the [logger] table.
type Config struct {
	LogLevel    string `toml:"log_level"`
	LogFilePath string `toml:"log_file"` // "-" logs to stderr

	// Enabled* lists keep only matching records; Disabled* lists drop
	// matching records and win over Enabled*. Packages are directory names
	// ("occurrence", "config") and files are base names ("store.go").
	EnabledTags      []string `toml:"enabled_tags"`
	DisabledTags     []string `toml:"disabled_tags"`
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`
	EnabledFiles     []string `toml:"enabled_files"`
	DisabledFiles    []string `toml:"disabled_files"`

	level    slog.Level
	tags     filter
	packages filter
	files    filter
}

// NewConfig returns the defaults: info level, default log location.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// process resolves the level name and builds the filter sets.
func (c *Config) process() {
	c.level = parseLevel(c.LogLevel)
	c.tags = newFilter(c.EnabledTags, c.DisabledTags)
	c.packages = newFilter(c.EnabledPackages, c.DisabledPackages)
	c.files = newFilter(c.EnabledFiles, c.DisabledFiles)
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// filter is an allow/deny pair of case-insensitive name sets. A nil allow
// set allows everything.
type filter struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

func newFilter(enabled, disabled []string) filter {
	return filter{allow: toSet(enabled), deny: toSet(disabled)}
}

func (f filter) active() bool { return f.allow != nil || f.deny != nil }

// admits reports whether a record carrying name passes. An empty name only
// fails when an allow list is set.
func (f filter) admits(name string) bool {
	name = strings.ToLower(name)
	if name == "" {
		return f.allow == nil
	}
	if _, ok := f.deny[name]; ok {
		return false
	}
	if f.allow == nil {
		return true
	}
	_, ok := f.allow[name]
	return ok
}

func toSet(items []string) map[string]struct{} {
	var set map[string]struct{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(items))
		}
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}
