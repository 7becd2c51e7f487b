package browser

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodian/nodian/internal/msg"
	"github.com/nodian/nodian/internal/state"
	"github.com/nodian/nodian/internal/tree"
)

// Host is the editor shell embedding the browser. The browser owns nothing
// behind this interface; it only keeps the host's open-file list consistent
// with renames and deletes, per the shared-update contract.
type Host interface {
	// FileSelected is fired when the selected file changes; path is ""
	// when the selection is cleared.
	FileSelected(path string) tea.Cmd
	// OpenFiles exposes the host's ordered open-file paths.
	OpenFiles() []string
	// RenameOpen remaps any open-file entry equal to oldPath.
	RenameOpen(oldPath, newPath string)
	// CloseOpen prunes any open-file entry equal to path.
	CloseOpen(path string)
	// CloseAll empties the open-file list.
	CloseAll()
}

// opKind identifies a mutating backend operation.
type opKind int

const (
	opCreateFile opKind = iota
	opCreateFolder
	opRename
	opDelete
)

// Message types delivered back to the event loop by async commands. Every
// message records the root it was issued against, so a reconciliation that
// lands after a root switch compares against the recorded paths and falls
// through as a no-op.
type (
	// rootResolvedMsg carries the startup root (persisted or backend default).
	rootResolvedMsg struct {
		root string
		err  error
	}

	// treeLoadedMsg carries a fresh snapshot for root.
	treeLoadedMsg struct {
		root    string
		node    *tree.Node
		refresh bool // explicit user refresh: re-derives expansion from the selection
		err     error
	}

	// opDoneMsg reports a mutating operation. err set means the backend
	// refused and nothing may change locally. node is the re-fetched
	// snapshot; loadErr set means the mutation succeeded but the re-fetch
	// did not.
	opDoneMsg struct {
		kind    opKind
		root    string
		parent  string // create: parent directory of the new entry
		path    string // create: new path; delete: removed path
		oldPath string // rename
		newPath string // rename
		node    *tree.Node
		err     error
		loadErr error
	}

	// rootChosenMsg reports the folder picker outcome; path "" means the
	// picker was cancelled and nothing changes.
	rootChosenMsg struct {
		path string
	}
)

// resolveRoot reads the persisted root, falling back to the backend's
// default workspace.
func (b *Browser) resolveRoot() tea.Cmd {
	return func() tea.Msg {
		if root := state.GetLastRootPath(); root != "" {
			return rootResolvedMsg{root: root}
		}
		root, err := b.backend.GetRootFolder()
		if err != nil {
			return rootResolvedMsg{err: err}
		}
		return rootResolvedMsg{root: root}
	}
}

// loadTree fetches the full snapshot for root.
func (b *Browser) loadTree(root string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		node, err := b.backend.GetFileTree(root)
		return treeLoadedMsg{root: root, node: node, refresh: refresh, err: err}
	}
}

// doCreate creates an empty file or folder, then re-fetches the snapshot.
func (b *Browser) doCreate(parent, target string, folder bool) tea.Cmd {
	root := b.root
	kind := opCreateFile
	create := b.backend.CreateFile
	if folder {
		kind = opCreateFolder
		create = b.backend.CreateFolder
	}
	return func() tea.Msg {
		done := opDoneMsg{kind: kind, root: root, parent: parent, path: target}
		if err := create(target); err != nil {
			done.err = err
			return done
		}
		done.node, done.loadErr = b.backend.GetFileTree(root)
		return done
	}
}

// doRename renames oldPath to newPath, then re-fetches the snapshot.
func (b *Browser) doRename(oldPath, newPath string) tea.Cmd {
	root := b.root
	return func() tea.Msg {
		done := opDoneMsg{kind: opRename, root: root, oldPath: oldPath, newPath: newPath}
		if err := b.backend.RenameItem(oldPath, newPath); err != nil {
			done.err = err
			return done
		}
		done.node, done.loadErr = b.backend.GetFileTree(root)
		return done
	}
}

// doDelete removes path recursively, then re-fetches the snapshot. The
// caller must already hold the user's confirmation.
func (b *Browser) doDelete(path string) tea.Cmd {
	root := b.root
	return func() tea.Msg {
		done := opDoneMsg{kind: opDelete, root: root, path: path}
		if err := b.backend.DeleteItem(path); err != nil {
			done.err = err
			return done
		}
		done.node, done.loadErr = b.backend.GetFileTree(root)
		return done
	}
}

// handleOpDone applies an operation's local reconciliation in the fixed
// order snapshot, expansion, selection and open files. On failure nothing
// changes; the error goes to the diagnostic channel and the inline edit
// stays active so the user can correct the draft.
func (b *Browser) handleOpDone(m opDoneMsg) tea.Cmd {
	sameRoot := m.root == b.root

	if m.err != nil {
		b.logger.Error("browser: operation failed", "op", m.kind, "error", m.err)
		// A failure from a previous root must not pollute an edit the
		// user has since begun under the current one.
		if sameRoot {
			b.editErr = m.err.Error()
		}
		return msg.ShowError(m.err.Error(), 3*time.Second)
	}

	var cmds []tea.Cmd

	// Snapshot first, but only when the operation's root is still current;
	// a completed call from a previous root must not clobber this one.
	if sameRoot && m.node != nil {
		if err := b.snapshot.Replace(m.node); err != nil {
			b.logger.Error("browser: bad snapshot after operation", "error", err)
			cmds = append(cmds, msg.ShowError(err.Error(), 3*time.Second))
		}
	}
	if m.loadErr != nil {
		b.logger.Error("browser: re-fetch after operation failed", "error", m.loadErr)
		cmds = append(cmds, msg.ShowError(m.loadErr.Error(), 3*time.Second))
	}

	// Expansion, then selection and open files, keyed strictly by the
	// recorded paths.
	switch m.kind {
	case opCreateFile, opCreateFolder:
		b.expanded.Add(m.parent)

	case opRename:
		b.expanded.Rename(m.oldPath, m.newPath)
		b.host.RenameOpen(m.oldPath, m.newPath)
		if b.selection == m.oldPath {
			b.selection = m.newPath
		}

	case opDelete:
		b.expanded.Remove(m.path)
		b.host.CloseOpen(m.path)
		if b.selection == m.path {
			b.selection = ""
			cmds = append(cmds, b.host.FileSelected(""))
		}
	}

	// The pending edit belongs to the root the operation was issued
	// against; a late completion from an old root leaves the current
	// edit and session alone.
	if sameRoot {
		b.cancelEdit()
		b.persistSession()
	}
	b.clampCursor()
	return tea.Batch(cmds...)
}

// changeRoot applies a chosen picker directory: root switches, open files
// and selection clear unconditionally, expansion resets to the sole new
// root, and the choice is persisted before the new tree loads.
func (b *Browser) changeRoot(root string) tea.Cmd {
	b.root = root
	b.host.CloseAll()
	clearCmd := b.host.FileSelected("")
	b.selection = ""
	b.cancelEdit()
	b.expanded.Reset(root)
	b.cursor, b.scroll = 0, 0

	if err := state.SetLastRootPath(root); err != nil {
		b.logger.Warn("browser: persist root failed", "error", err)
	}
	b.persistSession()

	return tea.Batch(clearCmd, b.loadTree(root, false))
}

// persistSession saves the selection and expansion for the next start.
func (b *Browser) persistSession() {
	st := state.BrowserState{
		SelectedPath: b.selection,
		ExpandedDirs: b.expanded.Paths(),
	}
	if err := state.SetBrowserState(st); err != nil {
		b.logger.Warn("browser: persist session failed", "error", err)
	}
}
