// Package browser implements the file-browser widget: a tree snapshot, an
// expansion set, a selection, and an exclusive inline edit, kept in sync
// with a filesystem backend by path equality.
package browser

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodian/nodian/internal/backend"
	"github.com/nodian/nodian/internal/msg"
	"github.com/nodian/nodian/internal/state"
	"github.com/nodian/nodian/internal/tree"
)

// Browser is the view-model for the tree pane. All mutation of its state
// containers happens on the event loop; backend work runs in command
// goroutines and comes back as messages.
type Browser struct {
	backend backend.Backend
	host    Host
	logger  *slog.Logger

	root      string
	snapshot  tree.Snapshot
	expanded  *ExpansionSet
	selection string // selected node path, "" = none

	edit    pendingEdit
	editErr string
	input   textinput.Model

	confirmDelete bool
	deleteTarget  string

	picker *picker

	cursor int
	scroll int
	width  int
	height int

	loading bool
	loadErr error
}

// New creates a browser bound to a backend and its host editor shell.
func New(be backend.Backend, host Host, logger *slog.Logger) *Browser {
	return &Browser{
		backend:  be,
		host:     host,
		logger:   logger,
		expanded: NewExpansionSet(),
		loading:  true,
	}
}

// Start resolves the workspace root and loads the first snapshot.
func (b *Browser) Start() tea.Cmd {
	return b.resolveRoot()
}

// Root returns the current workspace root path.
func (b *Browser) Root() string { return b.root }

// Selection returns the selected node path, or "" when nothing is selected.
func (b *Browser) Selection() string { return b.selection }

// SetSize updates the pane dimensions.
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.ensureCursorVisible()
}

// Editing reports whether an inline input is consuming keystrokes.
func (b *Browser) Editing() bool {
	return b.edit.kind != editNone || b.picker != nil
}

// Update handles messages for the browser pane.
func (b *Browser) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case rootResolvedMsg:
		return b.handleRootResolved(m)

	case treeLoadedMsg:
		return b.handleTreeLoaded(m)

	case opDoneMsg:
		return b.handleOpDone(m)

	case rootChosenMsg:
		b.picker = nil
		if m.path == "" {
			return nil // picker cancelled, nothing changes
		}
		return b.changeRoot(m.path)

	case tea.KeyMsg:
		return b.handleKey(m)
	}
	return nil
}

func (b *Browser) handleRootResolved(m rootResolvedMsg) tea.Cmd {
	if m.err != nil {
		// No root, no widget: stay in the loading state and report.
		b.loadErr = m.err
		b.logger.Error("browser: no workspace root", "error", m.err)
		return msg.ShowError(m.err.Error(), 5*time.Second)
	}

	b.root = m.root
	restored := state.GetBrowserState()
	b.selection = restored.SelectedPath

	// Fresh root load: single-level expansion, unless a selection was
	// restored, in which case making it visible wins.
	if b.selection != "" {
		b.expanded.CollapseAll()
		b.expanded.Add(b.root)
		b.expanded.ExpandAncestorsOf(b.selection)
	} else {
		b.expanded.Reset(b.root)
	}
	b.expanded.Restore(restored.ExpandedDirs)

	return b.loadTree(b.root, false)
}

func (b *Browser) handleTreeLoaded(m treeLoadedMsg) tea.Cmd {
	if m.root != b.root {
		return nil // stale load from a previous root
	}
	if m.err != nil {
		b.loadErr = m.err
		b.logger.Error("browser: tree load failed", "error", m.err)
		return msg.ShowError(m.err.Error(), 3*time.Second)
	}
	if err := b.snapshot.Replace(m.node); err != nil {
		b.loadErr = err
		b.logger.Error("browser: invalid tree from backend", "error", err)
		return msg.ShowError(err.Error(), 3*time.Second)
	}
	b.loading = false
	b.loadErr = nil

	var cmds []tea.Cmd
	if m.refresh {
		if b.selectionIsFile() {
			b.expanded.ExpandAncestorsOf(b.selection)
		} else {
			b.expanded.Reset(b.root)
		}
	} else if b.selectionIsFile() {
		// Initial load with a restored selection: hand it to the host so
		// the preview comes back up.
		cmds = append(cmds, b.host.FileSelected(b.selection))
	}
	b.clampCursor()
	return tea.Batch(cmds...)
}

// selectionIsFile reports whether the selection names a file in the
// current snapshot.
func (b *Browser) selectionIsFile() bool {
	if b.selection == "" {
		return false
	}
	n := b.snapshot.Find(b.selection)
	return n != nil && !n.IsDir
}

func (b *Browser) handleKey(m tea.KeyMsg) tea.Cmd {
	if b.picker != nil {
		return b.picker.handleKey(m)
	}
	if b.confirmDelete {
		return b.handleConfirmKey(m)
	}
	if b.edit.kind != editNone {
		return b.handleEditKey(m)
	}
	return b.handleTreeKey(m)
}

func (b *Browser) handleConfirmKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "y", "Y":
		target := b.deleteTarget
		b.confirmDelete = false
		b.deleteTarget = ""
		return b.doDelete(target)
	case "n", "N", "esc":
		// Declining a delete has no side effects.
		b.confirmDelete = false
		b.deleteTarget = ""
	}
	return nil
}

func (b *Browser) handleEditKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		b.cancelEdit()
		return nil
	case "enter":
		return b.commitEdit()
	default:
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(m)
		b.editErr = "" // clear error on input change
		return cmd
	}
}

func (b *Browser) handleTreeKey(m tea.KeyMsg) tea.Cmd {
	rows := b.visibleRows()

	switch m.String() {
	case "j", "down":
		if b.cursor < len(rows)-1 {
			b.cursor++
			b.ensureCursorVisible()
		}

	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
			b.ensureCursorVisible()
		}

	case "g":
		b.cursor, b.scroll = 0, 0

	case "G":
		if len(rows) > 0 {
			b.cursor = len(rows) - 1
			b.ensureCursorVisible()
		}

	case "enter":
		if n := b.rowNode(rows); n != nil {
			return b.selectNode(n)
		}

	case "l", "right":
		if n := b.rowNode(rows); n != nil && n.IsDir && !b.expanded.Has(n.Path) {
			b.expanded.Toggle(n.Path)
			b.persistSession()
		}

	case "h", "left":
		if n := b.rowNode(rows); n != nil && n.IsDir && b.expanded.Has(n.Path) {
			b.expanded.Toggle(n.Path)
			b.clampCursor()
			b.persistSession()
		}

	case "a":
		if b.snapshot.Root != nil {
			b.beginCreate(editCreateFile)
		}

	case "A":
		if b.snapshot.Root != nil {
			b.beginCreate(editCreateFolder)
		}

	case "r":
		if n := b.rowNode(rows); n != nil && n.Path != b.root {
			b.beginRename(n.Path)
		}

	case "d":
		if n := b.rowNode(rows); n != nil && n.Path != b.root {
			b.confirmDelete = true
			b.deleteTarget = n.Path
		}

	case "c":
		b.picker = newPicker(b.root)

	case "ctrl+r":
		return b.loadTree(b.root, true)

	case "E":
		if b.snapshot.Root != nil {
			b.expanded.ExpandAll(b.snapshot.Root)
			b.persistSession()
		}

	case "C":
		b.expanded.CollapseAll()
		b.expanded.Add(b.root)
		b.cursor, b.scroll = 0, 0
		b.persistSession()

	case "Y":
		if n := b.rowNode(rows); n != nil {
			if err := clipboard.WriteAll(n.Path); err != nil {
				return msg.ShowError("Failed to copy path", 2*time.Second)
			}
			return msg.ShowToast("Copied: "+n.Path, 2*time.Second)
		}
	}

	return nil
}

// selectNode applies the selection gesture: a directory also toggles its
// expansion, a file notifies the host. Any prior selection is replaced;
// pending edit state is left alone.
func (b *Browser) selectNode(n *tree.Node) tea.Cmd {
	b.selection = n.Path
	var cmd tea.Cmd
	if n.IsDir {
		b.expanded.Toggle(n.Path)
		b.clampCursor()
	} else {
		cmd = b.host.FileSelected(n.Path)
	}
	b.persistSession()
	return cmd
}

// rowNode returns the node under the cursor, nil for the synthetic create
// row or an empty tree.
func (b *Browser) rowNode(rows []row) *tree.Node {
	if b.cursor < 0 || b.cursor >= len(rows) {
		return nil
	}
	return rows[b.cursor].node
}

func (b *Browser) clampCursor() {
	if n := len(b.visibleRows()); b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	b.ensureCursorVisible()
}

func (b *Browser) ensureCursorVisible() {
	visible := b.visibleHeight()
	if visible <= 0 {
		return
	}
	if b.cursor < b.scroll {
		b.scroll = b.cursor
	}
	if b.cursor >= b.scroll+visible {
		b.scroll = b.cursor - visible + 1
	}
	if b.scroll < 0 {
		b.scroll = 0
	}
}
