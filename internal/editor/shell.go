// Package editor is the shell the browser plugs into: it owns the ordered
// open-file list and routes the selected file to the preview pane.
package editor

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/nodian/nodian/internal/pathutil"
	"github.com/nodian/nodian/internal/preview"
	"github.com/nodian/nodian/internal/styles"
)

// Shell tracks open files by path. Paths are the only identity: entries
// are remapped on rename and pruned on delete by exact path equality, in
// step with the browser's own containers.
type Shell struct {
	preview *preview.Preview
	logger  *slog.Logger

	open   []string // insertion order, no duplicates
	active string   // currently previewed path, "" = none
}

func NewShell(pv *preview.Preview, logger *slog.Logger) *Shell {
	return &Shell{preview: pv, logger: logger}
}

// FileSelected routes a selection change from the browser: a file path is
// appended to the open list (once) and shown; "" clears the pane.
func (s *Shell) FileSelected(path string) tea.Cmd {
	s.active = path
	if path != "" {
		s.addOpen(path)
	}
	return s.preview.Show(path)
}

// OpenFiles returns the open paths in order.
func (s *Shell) OpenFiles() []string {
	out := make([]string, len(s.open))
	copy(out, s.open)
	return out
}

// RenameOpen remaps every open entry equal to oldPath. Order is kept.
func (s *Shell) RenameOpen(oldPath, newPath string) {
	for i, p := range s.open {
		if p == oldPath {
			s.open[i] = newPath
		}
	}
	if s.active == oldPath {
		s.active = newPath
	}
	s.preview.Rename(oldPath, newPath)
}

// CloseOpen prunes any open entry equal to path.
func (s *Shell) CloseOpen(path string) {
	kept := s.open[:0]
	for _, p := range s.open {
		if p != path {
			kept = append(kept, p)
		}
	}
	s.open = kept
	if s.active == path {
		s.active = ""
	}
}

// CloseAll empties the open list, as happens on a root change.
func (s *Shell) CloseAll() {
	s.open = nil
	s.active = ""
}

// CloseActive closes the previewed file and activates its neighbor, the
// previous entry when one exists.
func (s *Shell) CloseActive() tea.Cmd {
	if s.active == "" {
		return nil
	}
	idx := s.indexOf(s.active)
	s.CloseOpen(s.active)
	if len(s.open) == 0 {
		return s.preview.Show("")
	}
	if idx > 0 {
		idx--
	}
	if idx >= len(s.open) {
		idx = len(s.open) - 1
	}
	s.active = s.open[idx]
	return s.preview.Show(s.active)
}

// NextFile cycles the preview forward through the open list.
func (s *Shell) NextFile() tea.Cmd { return s.cycle(1) }

// PrevFile cycles the preview backward through the open list.
func (s *Shell) PrevFile() tea.Cmd { return s.cycle(-1) }

func (s *Shell) cycle(step int) tea.Cmd {
	if len(s.open) == 0 {
		return nil
	}
	idx := s.indexOf(s.active)
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + step + len(s.open)) % len(s.open)
	}
	s.active = s.open[idx]
	return s.preview.Show(s.active)
}

// TabBar renders the open files as a single strip, active entry
// highlighted. Empty when nothing is open.
func (s *Shell) TabBar(width int) string {
	if len(s.open) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range s.open {
		name := pathutil.TruncateName(pathutil.Leaf(p))
		if p == s.active {
			sb.WriteString(styles.ListItemSelected.Render(" " + name + " "))
		} else {
			sb.WriteString(styles.Muted.Render(" " + name + " "))
		}
		if i < len(s.open)-1 {
			sb.WriteString(styles.Muted.Render("|"))
		}
	}
	return ansi.Truncate(sb.String(), width, "…")
}

func (s *Shell) indexOf(path string) int {
	for i, p := range s.open {
		if p == path {
			return i
		}
	}
	return -1
}

// addOpen appends path unless already present.
func (s *Shell) addOpen(path string) {
	if s.indexOf(path) >= 0 {
		return
	}
	s.open = append(s.open, path)
}
