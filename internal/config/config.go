// Package config loads user configuration from the JSON file under the
// nodian config directory. Missing fields take their defaults; a missing
// file is the all-defaults configuration.
package config

// Config is the root configuration structure.
type Config struct {
	UI     UIConfig     `json:"ui"`
	Events EventsConfig `json:"events"`
}

// UIConfig holds appearance and layout settings.
type UIConfig struct {
	// SyntaxTheme is the chroma style used for code previews.
	SyntaxTheme string `json:"syntaxTheme"`
	// MarkdownTheme is the glamour style used for markdown previews.
	MarkdownTheme string `json:"markdownTheme"`
	// TreeWidthPercent is the share of the window given to the tree pane.
	TreeWidthPercent int `json:"treeWidthPercent"`
}

// EventsConfig configures the calendar events strip.
type EventsConfig struct {
	Enabled bool `json:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			SyntaxTheme:      "monokai",
			MarkdownTheme:    "dark",
			TreeWidthPercent: 30,
		},
		Events: EventsConfig{
			Enabled: true,
		},
	}
}
