// Package tree holds the immutable directory snapshot fetched from the
// backend. A snapshot is replaced wholesale on every reload; nothing in it
// is ever mutated in place.
package tree

import (
	"fmt"
	"sort"
)

// Node is a single file or directory in a fetched snapshot. Path is the
// absolute slash-joined location and acts as the node's identity.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	IsDir    bool    `json:"is_dir"`
	Children []*Node `json:"children"`
}

// Snapshot is the last tree fetched from the backend, plus the root path it
// was fetched for.
type Snapshot struct {
	Root *Node
}

// Replace swaps in a freshly fetched tree after validating it. The previous
// snapshot is discarded entirely.
func (s *Snapshot) Replace(root *Node) error {
	if err := Validate(root); err != nil {
		return err
	}
	s.Root = root
	return nil
}

// Find returns the node with the given path, or nil.
func (s *Snapshot) Find(path string) *Node {
	return Find(s.Root, path)
}

// Find locates a node by path in a subtree.
func Find(n *Node, path string) *Node {
	if n == nil {
		return nil
	}
	if n.Path == path {
		return n
	}
	for _, c := range n.Children {
		if found := Find(c, path); found != nil {
			return found
		}
	}
	return nil
}

// SortedChildren returns a node's children in render order: directories
// before files, ties broken by case-sensitive name comparison. The node's
// own child slice is left untouched; sorting is a render-time concern.
func SortedChildren(n *Node) []*Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.Children))
	copy(out, n.Children)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Validate walks the tree and rejects anything a well-behaved backend can
// never produce: a nil root, or a path that appears twice. A repeated path
// is how a misreported cycle shows up once the tree has been decoded, and
// traversing it would never terminate, so it is treated as a fetch failure.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("tree: empty snapshot")
	}
	seen := make(map[string]struct{})
	var visit func(n *Node) error
	visit = func(n *Node) error {
		if _, dup := seen[n.Path]; dup {
			return fmt.Errorf("tree: cyclic or duplicated path %q", n.Path)
		}
		seen[n.Path] = struct{}{}
		for _, c := range n.Children {
			if c == nil {
				return fmt.Errorf("tree: nil child under %q", n.Path)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root)
}

// Walk visits every node in pre-order, children in render order.
func Walk(root *Node, fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range SortedChildren(n) {
			visit(c, depth+1)
		}
	}
	if root != nil {
		visit(root, 0)
	}
}

// DirPaths returns the path of every directory reachable from root,
// including root itself, in pre-order.
func DirPaths(root *Node) []string {
	var out []string
	Walk(root, func(n *Node, _ int) {
		if n.IsDir {
			out = append(out, n.Path)
		}
	})
	return out
}
