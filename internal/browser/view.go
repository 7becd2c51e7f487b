package browser

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nodian/nodian/internal/pathutil"
	"github.com/nodian/nodian/internal/styles"
	"github.com/nodian/nodian/internal/tree"
	"github.com/nodian/nodian/internal/ui"
)

// row is one visible line of the tree: a node, or the synthetic input row
// for an in-progress create.
type row struct {
	node   *tree.Node // nil for the create input row
	depth  int
	create bool
}

// visibleRows flattens the snapshot in render order: each expanded
// directory contributes its children, directories before files, names
// tie-breaking case-sensitively. A pending create inserts its input row
// directly under the parent.
func (b *Browser) visibleRows() []row {
	if b.snapshot.Root == nil {
		return nil
	}
	var rows []row
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		rows = append(rows, row{node: n, depth: depth})
		if !n.IsDir || !b.expanded.Has(n.Path) {
			return
		}
		if b.creating() && b.edit.parentPath == n.Path {
			rows = append(rows, row{depth: depth + 1, create: true})
		}
		for _, c := range tree.SortedChildren(n) {
			walk(c, depth+1)
		}
	}
	walk(b.snapshot.Root, 0)
	return rows
}

func (b *Browser) creating() bool {
	return b.edit.kind == editCreateFile || b.edit.kind == editCreateFolder
}

// visibleHeight is the tree rows that fit between header and footer.
func (b *Browser) visibleHeight() int {
	h := b.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the pane interior. The caller wraps it in a panel border.
func (b *Browser) View() string {
	var sb strings.Builder

	// Header: pane title and the workspace root's leaf name.
	sb.WriteString(styles.Title.Render("Files"))
	if b.root != "" {
		sb.WriteString("  ")
		sb.WriteString(styles.Muted.Render(pathutil.Leaf(b.root)))
	}
	sb.WriteString("\n\n")

	switch {
	case b.loadErr != nil:
		sb.WriteString(styles.ErrorText.Render(b.loadErr.Error()))
	case b.loading || b.snapshot.Root == nil:
		sb.WriteString(styles.Muted.Render("Loading..."))
	default:
		sb.WriteString(b.renderRows())
	}

	sb.WriteString("\n")
	sb.WriteString(b.renderFooter())

	out := sb.String()
	if b.picker != nil {
		out = ui.OverlayModal(out, b.picker.view(), b.width, b.height)
	}
	return out
}

func (b *Browser) renderRows() string {
	rows := b.visibleRows()
	if len(rows) == 0 {
		return styles.Muted.Render("No files")
	}

	end := b.scroll + b.visibleHeight()
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	for i := b.scroll; i < end; i++ {
		sb.WriteString(b.renderRow(rows[i], i == b.cursor))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderRow renders one line. The cursor row gets the full-width highlight;
// the selected node keeps its marker even when the cursor is elsewhere.
func (b *Browser) renderRow(r row, underCursor bool) string {
	indent := strings.Repeat("  ", r.depth)
	maxWidth := b.width - 2
	if maxWidth < 8 {
		maxWidth = 8
	}

	// Input rows: the pending create, or a rename replacing its node's name.
	if r.create {
		return styles.TreeEditRow.Render(indent + "+ " + b.input.View())
	}
	n := r.node
	if b.edit.kind == editRename && b.edit.targetPath == n.Path {
		return styles.TreeEditRow.Render(indent + "  " + b.input.View())
	}

	icon := "  "
	if n.IsDir {
		if b.expanded.Has(n.Path) {
			icon = "v "
		} else {
			icon = "> "
		}
	}

	name := pathutil.TruncateName(n.Name)
	marker := " "
	if n.Path == b.selection {
		marker = "*"
	}

	plain := marker + indent + icon + name
	if underCursor {
		if pad := maxWidth - runewidth.StringWidth(plain); pad > 0 {
			plain += strings.Repeat(" ", pad)
		}
		return styles.ListItemSelected.Render(plain)
	}

	styled := styles.TreeFile
	if n.IsDir {
		styled = styles.TreeDir
	}
	return marker + indent + styles.TreeIcon.Render(icon) + styled.Render(name)
}

// renderFooter shows the contextual bottom line: a delete confirmation, an
// edit hint with any validation error, or the full untruncated name of the
// node under the cursor.
func (b *Browser) renderFooter() string {
	if b.confirmDelete {
		return styles.ErrorText.Render("Delete " + pathutil.Leaf(b.deleteTarget) + "? (y/n)")
	}
	if b.edit.kind != editNone {
		hint := styles.KeyHint.Render("enter save · esc cancel")
		if b.editErr != "" {
			return styles.ErrorText.Render(b.editErr) + " " + hint
		}
		return hint
	}
	if n := b.rowNode(b.visibleRows()); n != nil {
		return styles.Muted.Render(n.Name)
	}
	return ""
}
