// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/dupline/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`  // Embed logger config under [logger] table
	Editor  EditorConfig  `toml:"editor"`  // Editor-specific settings
	Dupline Settings      `toml:"dupline"` // Command switches and occurrence indicator
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	MaxHistory int `toml:"max_history"`
	// Keys maps key names such as "ctrl+shift+up" to command ids and
	// overrides the default bindings.
	Keys map[string]string `toml:"keys"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic applies
		},
		Editor: EditorConfig{
			MaxHistory: DefaultMaxHistory,
		},
		Dupline: DefaultSettings(),
	}
}

// DefaultPath returns ~/.config/dupline/config.toml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// decodeFile decodes a TOML file on top of cfg. A missing file leaves cfg
// untouched.
func decodeFile(filePath string, cfg *Config, verbose bool) error {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}
	return decodeBytes(filePath, data, cfg, verbose)
}

func decodeBytes(filePath string, data []byte, cfg *Config, verbose bool) error {
	metadata, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = DefaultMaxHistory
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = "info"
	}
	c.Dupline.validate()
}

// Load builds a configuration from defaults, the file at configFilePath
// (the default location when empty) and flag overrides.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		// The logger is not initialized yet during the initial load.
		err = decodeFile(effectivePath, cfg, false)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once. It should be
// called only from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// Encode writes cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
