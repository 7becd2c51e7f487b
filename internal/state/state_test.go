package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	// Use InitWithDir to avoid reading real user state
	err := InitWithDir(filepath.Join(tmpDir, ".config", "nodian"))
	if err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}

	if current == nil {
		t.Error("current state should be initialized")
	}
	if current.LastRootPath != "" {
		t.Errorf("default LastRootPath = %q, want empty", current.LastRootPath)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestLoad_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	path = filepath.Join(tmpDir, "nonexistent", "state.json")

	err := Load()
	if err != nil {
		t.Fatalf("Load() for non-existent file should return nil, got %v", err)
	}

	if current == nil {
		t.Error("current should be initialized with defaults")
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile

	if err := os.WriteFile(stateFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("failed to write invalid JSON: %v", err)
	}

	err := Load()
	if err == nil {
		t.Error("Load() should return error for invalid JSON")
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestSave_CreateDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "deep", "nested", "config", "nodian", "state.json")
	path = stateFile

	current = &State{LastRootPath: "/home/user/nodian"}

	err := Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if _, err := os.Stat(stateFile); err != nil {
		t.Fatalf("state file not created: %v", err)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestSave_NilCurrent(t *testing.T) {
	originalPath := path
	originalCurrent := current

	current = nil
	path = "/tmp/nonexistent/state.json"

	// Should not error when current is nil
	err := Save()
	if err != nil {
		t.Fatalf("Save() with nil current should not error, got %v", err)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestSetLastRootPath(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile
	current = nil

	err := SetLastRootPath("/projects/notes")
	if err != nil {
		t.Fatalf("SetLastRootPath() failed: %v", err)
	}

	// Verify in memory (nil state must be initialized)
	if current == nil || current.LastRootPath != "/projects/notes" {
		t.Errorf("current.LastRootPath = %v, want /projects/notes", current)
	}
	if got := GetLastRootPath(); got != "/projects/notes" {
		t.Errorf("GetLastRootPath() = %q, want /projects/notes", got)
	}

	// Verify saved to disk
	data, _ := os.ReadFile(stateFile)
	var loaded State
	_ = json.Unmarshal(data, &loaded)
	if loaded.LastRootPath != "/projects/notes" {
		t.Errorf("persisted LastRootPath = %q, want /projects/notes", loaded.LastRootPath)
	}
}

func TestGetLastRootPath_Default(t *testing.T) {
	originalCurrent := current
	defer func() { current = originalCurrent }()

	current = nil
	if got := GetLastRootPath(); got != "" {
		t.Errorf("GetLastRootPath() with nil current = %q, want empty", got)
	}
}

func TestBrowserStateRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	path = filepath.Join(tmpDir, "state.json")
	current = &State{}

	saved := BrowserState{
		SelectedPath: "/w/docs/notes.md",
		ExpandedDirs: []string{"/w", "/w/docs"},
	}
	if err := SetBrowserState(saved); err != nil {
		t.Fatalf("SetBrowserState() failed: %v", err)
	}

	// Load into fresh state
	current = nil
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got := GetBrowserState()
	if got.SelectedPath != saved.SelectedPath {
		t.Errorf("SelectedPath = %q, want %q", got.SelectedPath, saved.SelectedPath)
	}
	if len(got.ExpandedDirs) != 2 {
		t.Errorf("ExpandedDirs = %v", got.ExpandedDirs)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	path = filepath.Join(tmpDir, "state.json")
	current = &State{}

	// Run concurrent reads and writes
	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			root := "/a"
			if n%2 == 0 {
				root = "/b"
			}
			if err := SetLastRootPath(root); err != nil {
				errs <- err
			}
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GetLastRootPath()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent access error: %v", err)
		}
	}
}
