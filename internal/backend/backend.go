// Package backend defines the filesystem service the browser talks to.
// The browser never touches the disk itself; every mutation and every tree
// fetch goes through this interface so the view-model can be tested against
// a fake and the real implementation stays swappable.
package backend

import (
	"errors"

	"github.com/nodian/nodian/internal/tree"
)

// Sentinel errors the controller matches on to classify failures.
var (
	// ErrExists is returned when a create or rename target already exists.
	ErrExists = errors.New("already exists")
	// ErrNotFound is returned when an operation's source path is missing.
	ErrNotFound = errors.New("not found")
)

// Backend performs directory walking and filesystem mutation on behalf of
// the browser. All paths are absolute. Implementations must be safe to call
// from multiple goroutines; the browser issues calls from tea.Cmd closures.
type Backend interface {
	// GetRootFolder returns the default workspace root, creating it if it
	// does not exist yet. Fails only when no workspace can be established.
	GetRootFolder() (string, error)

	// GetFileTree walks path recursively and returns the full tree.
	// Fails if path does not exist or is not a directory.
	GetFileTree(path string) (*tree.Node, error)

	// CreateFile creates an empty file. Fails with ErrExists if the path
	// is taken, or an error if the parent directory is missing.
	CreateFile(path string) error

	// CreateFolder creates a single directory. Same failure contract as
	// CreateFile.
	CreateFolder(path string) error

	// RenameItem moves oldPath to newPath. Fails with ErrExists when the
	// destination is taken and ErrNotFound when the source vanished.
	RenameItem(oldPath, newPath string) error

	// DeleteItem removes a file, or a directory with all its descendants.
	// Fails with ErrNotFound when the path is missing.
	DeleteItem(path string) error

	// ReadFile returns a file's raw content for the preview pane.
	ReadFile(path string) ([]byte, error)
}
