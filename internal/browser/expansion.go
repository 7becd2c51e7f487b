package browser

import (
	"sort"

	"github.com/nodian/nodian/internal/pathutil"
	"github.com/nodian/nodian/internal/tree"
)

// ExpansionSet tracks which directories render expanded. Membership is kept
// by path string, independent of any snapshot, so it survives tree reloads;
// entries for vanished paths linger harmlessly until a rename remaps them
// or a delete removes them.
type ExpansionSet struct {
	paths map[string]struct{}
}

// NewExpansionSet returns an empty set.
func NewExpansionSet() *ExpansionSet {
	return &ExpansionSet{paths: make(map[string]struct{})}
}

// Has reports whether path is expanded.
func (s *ExpansionSet) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Add marks path expanded.
func (s *ExpansionSet) Add(path string) {
	s.paths[path] = struct{}{}
}

// Remove collapses path.
func (s *ExpansionSet) Remove(path string) {
	delete(s.paths, path)
}

// Toggle flips path's membership.
func (s *ExpansionSet) Toggle(path string) {
	if s.Has(path) {
		delete(s.paths, path)
	} else {
		s.paths[path] = struct{}{}
	}
}

// Rename remaps a member equal to oldPath to newPath. Descendant entries
// keyed under the old prefix are left alone; they go stale and sit unused.
func (s *ExpansionSet) Rename(oldPath, newPath string) {
	if s.Has(oldPath) {
		delete(s.paths, oldPath)
		s.paths[newPath] = struct{}{}
	}
}

// ExpandAncestorsOf adds every proper ancestor directory of filePath, so
// the file itself becomes visible. The file's own path is never added.
func (s *ExpansionSet) ExpandAncestorsOf(filePath string) {
	for _, p := range pathutil.Ancestors(filePath) {
		s.paths[p] = struct{}{}
	}
}

// ExpandAll adds every directory reachable from root.
func (s *ExpansionSet) ExpandAll(root *tree.Node) {
	for _, p := range tree.DirPaths(root) {
		s.paths[p] = struct{}{}
	}
}

// CollapseAll empties the set.
func (s *ExpansionSet) CollapseAll() {
	s.paths = make(map[string]struct{})
}

// Reset empties the set and expands only rootPath.
func (s *ExpansionSet) Reset(rootPath string) {
	s.paths = map[string]struct{}{rootPath: {}}
}

// Paths returns the members sorted, for persistence.
func (s *ExpansionSet) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Restore adds every given path.
func (s *ExpansionSet) Restore(paths []string) {
	for _, p := range paths {
		s.paths[p] = struct{}{}
	}
}
