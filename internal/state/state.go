package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	// LastRootPath is the workspace root restored on startup; empty means
	// ask the backend for its default root.
	LastRootPath string `json:"lastRootPath,omitempty"`

	// Session-restore state for the browser widget.
	Browser BrowserState `json:"browser,omitempty"`
}

// BrowserState holds persistent file browser state.
type BrowserState struct {
	SelectedPath string   `json:"selectedPath,omitempty"` // currently selected node path (absolute)
	ExpandedDirs []string `json:"expandedDirs,omitempty"` // expanded directory paths
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "nodian"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// ConfigDir returns the directory holding the state file. Only valid
// after Init or InitWithDir.
func ConfigDir() string {
	return filepath.Dir(path)
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetLastRootPath returns the persisted workspace root.
// Returns "" if no root has been chosen yet.
func GetLastRootPath() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LastRootPath
}

// SetLastRootPath persists the chosen workspace root.
func SetLastRootPath(root string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.LastRootPath = root
	mu.Unlock()
	return Save()
}

// GetBrowserState returns the saved browser session state.
func GetBrowserState() BrowserState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return BrowserState{}
	}
	return current.Browser
}

// SetBrowserState saves the browser session state.
func SetBrowserState(s BrowserState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Browser = s
	mu.Unlock()
	return Save()
}
