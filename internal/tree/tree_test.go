package tree

import (
	"reflect"
	"testing"
)

// fixture returns a small tree rooted at /w.
//
//	/w
//	  /w/docs (dir)
//	    /w/docs/b.txt
//	  /w/a.txt
func fixture() *Node {
	return &Node{
		Name: "w", Path: "/w", IsDir: true,
		Children: []*Node{
			{Name: "a.txt", Path: "/w/a.txt"},
			{Name: "docs", Path: "/w/docs", IsDir: true, Children: []*Node{
				{Name: "b.txt", Path: "/w/docs/b.txt"},
			}},
		},
	}
}

func TestSortedChildren(t *testing.T) {
	n := &Node{
		Name: "w", Path: "/w", IsDir: true,
		Children: []*Node{
			{Name: "b.txt", Path: "/w/b.txt"},
			{Name: "A", Path: "/w/A", IsDir: true},
			{Name: "a.txt", Path: "/w/a.txt"},
		},
	}

	var got []string
	for _, c := range SortedChildren(n) {
		got = append(got, c.Name)
	}
	want := []string{"A", "a.txt", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("render order = %v, want %v", got, want)
	}

	// Sorting must not touch the stored snapshot.
	if n.Children[0].Name != "b.txt" {
		t.Error("SortedChildren mutated the snapshot's child order")
	}
}

func TestFind(t *testing.T) {
	root := fixture()
	if n := Find(root, "/w/docs/b.txt"); n == nil || n.Name != "b.txt" {
		t.Errorf("Find(/w/docs/b.txt) = %v", n)
	}
	if n := Find(root, "/w/missing"); n != nil {
		t.Errorf("Find(missing) = %v, want nil", n)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(fixture()); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	if err := Validate(nil); err == nil {
		t.Error("nil root accepted")
	}

	// A repeated path is how a cyclic backend response surfaces.
	dup := fixture()
	dup.Children = append(dup.Children, &Node{Name: "a.txt", Path: "/w/a.txt"})
	if err := Validate(dup); err == nil {
		t.Error("duplicated path accepted")
	}
}

func TestDirPaths(t *testing.T) {
	got := DirPaths(fixture())
	want := []string{"/w", "/w/docs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DirPaths = %v, want %v", got, want)
	}
}

func TestSnapshotReplace(t *testing.T) {
	var s Snapshot
	if err := s.Replace(fixture()); err != nil {
		t.Fatal(err)
	}
	if s.Find("/w/docs") == nil {
		t.Error("snapshot lost a node on Replace")
	}

	// A bad fetch must leave the previous snapshot in place.
	if err := s.Replace(nil); err == nil {
		t.Fatal("nil snapshot accepted")
	}
	if s.Root == nil || s.Root.Path != "/w" {
		t.Error("failed Replace discarded the previous snapshot")
	}
}
