package backend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nodian/nodian/internal/tree"
)

// defaultWorkspaceName is the directory created under the user's home when
// no workspace has ever been chosen.
const defaultWorkspaceName = "nodian"

// Local implements Backend against the real filesystem.
type Local struct {
	logger *slog.Logger
}

// NewLocal returns a filesystem-backed Backend.
func NewLocal(logger *slog.Logger) *Local {
	return &Local{logger: logger}
}

// GetRootFolder returns ~/nodian, creating it when absent.
func (l *Local) GetRootFolder() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	root := filepath.Join(home, defaultWorkspaceName)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("create default workspace: %w", err)
	}
	return filepath.ToSlash(root), nil
}

// GetFileTree walks path recursively. Unreadable subdirectories contribute
// empty children rather than failing the whole fetch; only a missing or
// non-directory root is an error.
func (l *Local) GetFileTree(path string) (*tree.Node, error) {
	info, err := os.Stat(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("fetch tree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fetch tree: %s is not a directory", path)
	}
	return l.buildNode(path, info.Name(), true), nil
}

func (l *Local) buildNode(path, name string, isDir bool) *tree.Node {
	node := &tree.Node{Name: name, Path: path, IsDir: isDir}
	if !isDir {
		return node
	}
	entries, err := os.ReadDir(filepath.FromSlash(path))
	if err != nil {
		// Matches the walking contract: unreadable directories read as
		// empty, the fetch itself still succeeds.
		l.logger.Warn("backend: unreadable directory", "path", path, "error", err)
		return node
	}
	for _, entry := range entries {
		child := l.buildNode(path+"/"+entry.Name(), entry.Name(), entry.IsDir())
		node.Children = append(node.Children, child)
	}
	return node
}

// CreateFile creates an empty file, failing if the path is taken.
func (l *Local) CreateFile(path string) error {
	f, err := os.OpenFile(filepath.FromSlash(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("create %s: %w", path, ErrExists)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	return f.Close()
}

// CreateFolder creates a single directory, failing if the path is taken or
// the parent is missing.
func (l *Local) CreateFolder(path string) error {
	if err := os.Mkdir(filepath.FromSlash(path), 0755); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("create %s: %w", path, ErrExists)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// RenameItem moves oldPath to newPath, refusing to clobber an existing
// destination.
func (l *Local) RenameItem(oldPath, newPath string) error {
	if _, err := os.Stat(filepath.FromSlash(newPath)); err == nil {
		return fmt.Errorf("rename to %s: %w", newPath, ErrExists)
	}
	if _, err := os.Stat(filepath.FromSlash(oldPath)); os.IsNotExist(err) {
		return fmt.Errorf("rename %s: %w", oldPath, ErrNotFound)
	}
	if err := os.Rename(filepath.FromSlash(oldPath), filepath.FromSlash(newPath)); err != nil {
		return fmt.Errorf("rename %s: %w", oldPath, err)
	}
	return nil
}

// DeleteItem removes path recursively.
func (l *Local) DeleteItem(path string) error {
	if _, err := os.Stat(filepath.FromSlash(path)); os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", path, ErrNotFound)
	}
	if err := os.RemoveAll(filepath.FromSlash(path)); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// ReadFile returns a file's raw content.
func (l *Local) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
