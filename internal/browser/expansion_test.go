package browser

import (
	"reflect"
	"testing"

	"github.com/nodian/nodian/internal/tree"
)

func TestExpansionSet_ToggleIdempotence(t *testing.T) {
	s := NewExpansionSet()
	s.Add("/w")
	before := s.Paths()

	s.Toggle("/w/docs")
	s.Toggle("/w/docs")

	if got := s.Paths(); !reflect.DeepEqual(got, before) {
		t.Errorf("double toggle changed membership: %v, want %v", got, before)
	}
}

func TestExpansionSet_ExpandAncestorsOf(t *testing.T) {
	s := NewExpansionSet()
	s.ExpandAncestorsOf("/a/b/c.txt")

	want := []string{"/a", "/a/b"}
	if got := s.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if s.Has("/a/b/c.txt") {
		t.Error("the file itself must not be expanded")
	}
}

func TestExpansionSet_Rename(t *testing.T) {
	s := NewExpansionSet()
	s.Add("/w/old")
	s.Add("/w/other")

	s.Rename("/w/old", "/w/new")

	if s.Has("/w/old") {
		t.Error("old path still present after rename")
	}
	if !s.Has("/w/new") {
		t.Error("new path missing after rename")
	}
	if !s.Has("/w/other") {
		t.Error("unrelated path dropped by rename")
	}

	// Renaming a non-member must not invent an entry.
	s.Rename("/w/absent", "/w/ghost")
	if s.Has("/w/ghost") {
		t.Error("rename of non-member added an entry")
	}
}

func TestExpansionSet_ExpandAllCollapseAll(t *testing.T) {
	root := &tree.Node{
		Name: "w", Path: "/w", IsDir: true,
		Children: []*tree.Node{
			{Name: "a.txt", Path: "/w/a.txt"},
			{Name: "docs", Path: "/w/docs", IsDir: true, Children: []*tree.Node{
				{Name: "deep", Path: "/w/docs/deep", IsDir: true},
			}},
		},
	}

	s := NewExpansionSet()
	s.ExpandAll(root)

	want := []string{"/w", "/w/docs", "/w/docs/deep"}
	if got := s.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandAll = %v, want %v", got, want)
	}
	if s.Has("/w/a.txt") {
		t.Error("ExpandAll added a file path")
	}

	s.CollapseAll()
	if len(s.Paths()) != 0 {
		t.Errorf("CollapseAll left %v", s.Paths())
	}
}

func TestExpansionSet_Reset(t *testing.T) {
	s := NewExpansionSet()
	s.Add("/old/a")
	s.Add("/old/b")

	s.Reset("/new")

	if got := s.Paths(); !reflect.DeepEqual(got, []string{"/new"}) {
		t.Errorf("Reset = %v, want [/new]", got)
	}
}
