// Package pathutil provides pure helpers for the slash-joined absolute
// paths that identify every node in the workspace tree.
package pathutil

import (
	"fmt"
	"strings"
)

const (
	// maxDisplayLen is the longest name rendered verbatim.
	maxDisplayLen = 18
	// truncatedLen is how many leading characters survive truncation.
	truncatedLen = 15
)

// Join appends a leaf name to a parent path.
func Join(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// Parent returns the directory containing path, or "/" at the top.
func Parent(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// Leaf returns the last path segment.
func Leaf(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// Ancestors returns every proper ancestor directory of p, outermost first.
// The path itself is never included.
//
//	Ancestors("/a/b/c.txt") = ["/a", "/a/b"]
func Ancestors(p string) []string {
	var out []string
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[:i])
		}
	}
	return out
}

// TruncateName shortens a display name to its first 15 characters plus an
// ellipsis when it exceeds 18 characters. The result is presentational
// only; callers must keep the full name around for tooltips and must never
// use the truncated form as a path component.
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxDisplayLen {
		return name
	}
	return string(runes[:truncatedLen]) + "..."
}

// StemEnd returns the byte offset where a rename input's initial selection
// should end: just before the last dot, unless that dot is the first
// character, in which case the whole name is selected.
func StemEnd(name string) int {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return len(name)
	}
	return idx
}

// ValidateName rejects draft names that can never be a single path segment.
// Checked before any backend call so conflicts are the only server-side
// failures left.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name: %s", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("name cannot contain path separators")
	}
	for _, r := range name {
		if r == 0 || (r < 32 && r != '\t') {
			return fmt.Errorf("name contains invalid characters")
		}
	}
	return nil
}
