package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodian/nodian/internal/pathutil"
	"github.com/nodian/nodian/internal/styles"
)

// picker is the change-root modal: it walks real directories outside the
// current snapshot and reports the chosen one (or "") as a rootChosenMsg.
type picker struct {
	dir     string
	entries []string // child directory names, sorted
	cursor  int
	readErr error
}

func newPicker(start string) *picker {
	p := &picker{dir: start}
	p.load()
	return p
}

// load lists the subdirectories of the current directory. Hidden entries
// are skipped; a read failure leaves the previous listing empty and shows
// the error in the modal.
func (p *picker) load() {
	p.entries = nil
	p.cursor = 0
	ents, err := os.ReadDir(filepath.FromSlash(p.dir))
	if err != nil {
		p.readErr = err
		return
	}
	p.readErr = nil
	for _, e := range ents {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			p.entries = append(p.entries, e.Name())
		}
	}
	sort.Strings(p.entries)
}

func (p *picker) handleKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc", "q":
		return chooseRoot("")

	case "j", "down":
		if p.cursor < len(p.entries)-1 {
			p.cursor++
		}

	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}

	case "enter", "l":
		if p.cursor < len(p.entries) {
			p.dir = pathutil.Join(p.dir, p.entries[p.cursor])
			p.load()
		}

	case "h", "backspace":
		if parent := pathutil.Parent(p.dir); parent != p.dir {
			p.dir = parent
			p.load()
		}

	case "c":
		return chooseRoot(p.dir)
	}
	return nil
}

func chooseRoot(path string) tea.Cmd {
	return func() tea.Msg {
		return rootChosenMsg{path: path}
	}
}

func (p *picker) view() string {
	var sb strings.Builder
	sb.WriteString(styles.ModalTitle.Render(" Change Root "))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(p.dir))
	sb.WriteString("\n\n")

	switch {
	case p.readErr != nil:
		sb.WriteString(styles.ErrorText.Render(p.readErr.Error()))
	case len(p.entries) == 0:
		sb.WriteString(styles.Muted.Render("No subfolders"))
	default:
		for i, name := range p.entries {
			line := "  " + name + "/"
			if i == p.cursor {
				line = styles.ListItemSelected.Render("> " + name + "/")
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.KeyHint.Render("enter open · h up · c choose · esc cancel"))
	return styles.ModalBorder.Render(sb.String())
}
