package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDir  = ".config/nodian"
	configFile = "config.json"
)

// ConfigPath returns the config file's location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFile
	}
	return filepath.Join(home, configDir, configFile)
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config from path. A missing file yields the defaults;
// present fields override them, absent ones keep them.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyBounds()
	return cfg, nil
}

// applyBounds clamps values a hand-edited file can push out of range.
func (c *Config) applyBounds() {
	if c.UI.TreeWidthPercent < 15 {
		c.UI.TreeWidthPercent = 15
	}
	if c.UI.TreeWidthPercent > 70 {
		c.UI.TreeWidthPercent = 70
	}
	if c.UI.SyntaxTheme == "" {
		c.UI.SyntaxTheme = Default().UI.SyntaxTheme
	}
	if c.UI.MarkdownTheme == "" {
		c.UI.MarkdownTheme = Default().UI.MarkdownTheme
	}
}
