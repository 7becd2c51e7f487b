package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodian/nodian/internal/pathutil"
)

// editKind tags the exclusive pending-edit state. At most one inline input
// exists anywhere in the tree at a time.
type editKind int

const (
	editNone editKind = iota
	editCreateFile
	editCreateFolder
	editRename
)

// pendingEdit is the in-progress inline interaction: creating a child under
// parentPath, or renaming targetPath. The draft name lives in the browser's
// textinput.
type pendingEdit struct {
	kind       editKind
	parentPath string // create: directory receiving the new entry
	targetPath string // rename: node being renamed
}

// beginCreate starts an inline create. The parent is the selected node when
// that node is a directory, otherwise the current root.
func (b *Browser) beginCreate(kind editKind) {
	parent := b.root
	if b.selection != "" {
		if n := b.snapshot.Find(b.selection); n != nil && n.IsDir {
			parent = n.Path
		}
	}
	// The new row only renders under an expanded parent.
	b.expanded.Add(parent)

	b.edit = pendingEdit{kind: kind, parentPath: parent}
	b.editErr = ""
	b.input = textinput.New()
	if kind == editCreateFolder {
		b.input.Placeholder = "folder name"
	} else {
		b.input.Placeholder = "file name"
	}
	b.input.Focus()
}

// beginRename starts an inline rename of path, seeding the draft with the
// current leaf name. The cursor is placed at the end of the stem (the name
// up to its last dot) so typing replaces the interesting part first.
func (b *Browser) beginRename(path string) {
	name := pathutil.Leaf(path)
	b.edit = pendingEdit{kind: editRename, targetPath: path}
	b.editErr = ""
	b.input = textinput.New()
	b.input.SetValue(name)
	b.input.Focus()
	b.input.SetCursor(pathutil.StemEnd(name))
}

// cancelEdit discards the pending edit and draft unconditionally. No
// backend call is made.
func (b *Browser) cancelEdit() {
	b.edit = pendingEdit{}
	b.editErr = ""
	b.input.Reset()
}

// commitEdit validates the draft name and issues the backend call for the
// pending edit. An empty trimmed draft leaves the input active; a name that
// fails validation shows the error inline without touching the backend.
func (b *Browser) commitEdit() tea.Cmd {
	name := strings.TrimSpace(b.input.Value())
	if name == "" {
		return nil
	}
	if err := pathutil.ValidateName(name); err != nil {
		b.editErr = err.Error()
		return nil
	}

	switch b.edit.kind {
	case editCreateFile, editCreateFolder:
		target := pathutil.Join(b.edit.parentPath, name)
		return b.doCreate(b.edit.parentPath, target, b.edit.kind == editCreateFolder)

	case editRename:
		oldPath := b.edit.targetPath
		newPath := pathutil.Join(pathutil.Parent(oldPath), name)
		if newPath == oldPath {
			// Unchanged name: nothing to do.
			b.cancelEdit()
			return nil
		}
		return b.doRename(oldPath, newPath)
	}
	return nil
}
