// Package preview renders the selected file in the right pane: markdown
// through glamour, everything else through chroma, binaries as a
// placeholder.
package preview

import (
	"bytes"
	"log/slog"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/nodian/nodian/internal/backend"
	"github.com/nodian/nodian/internal/pathutil"
	"github.com/nodian/nodian/internal/styles"
)

const maxPreviewBytes = 256 * 1024

// fileLoadedMsg carries a file's contents back to the event loop. path is
// recorded at issue time so a load landing after the selection moved on is
// dropped.
type fileLoadedMsg struct {
	path string
	data []byte
	err  error
}

// Preview is the read-only file pane.
type Preview struct {
	backend backend.Backend
	logger  *slog.Logger

	path    string
	lines   []string
	loading bool
	err     error
	scroll  int

	width  int
	height int

	raw       []byte // kept for re-render on resize
	truncated bool
}

func New(be backend.Backend, logger *slog.Logger) *Preview {
	return &Preview{backend: be, logger: logger}
}

// Path returns the previewed file path, "" when the pane is empty.
func (p *Preview) Path() string { return p.path }

// Rename remaps the previewed path after a file rename. The content on
// screen stays as is; only the identity changes.
func (p *Preview) Rename(oldPath, newPath string) {
	if p.path == oldPath {
		p.path = newPath
	}
}

// SetSize updates pane dimensions and re-renders the current content at
// the new width.
func (p *Preview) SetSize(width, height int) {
	rerender := width != p.width && len(p.raw) > 0
	p.width = width
	p.height = height
	if rerender {
		p.render()
	}
}

// Show starts loading path; an empty path clears the pane.
func (p *Preview) Show(path string) tea.Cmd {
	p.path = path
	p.scroll = 0
	p.err = nil
	p.lines = nil
	p.raw = nil
	if path == "" {
		p.loading = false
		return nil
	}
	p.loading = true
	return func() tea.Msg {
		data, err := p.backend.ReadFile(path)
		return fileLoadedMsg{path: path, data: data, err: err}
	}
}

// Update handles preview messages and scroll keys.
func (p *Preview) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case fileLoadedMsg:
		if m.path != p.path {
			return nil // selection moved on before the load finished
		}
		p.loading = false
		if m.err != nil {
			p.err = m.err
			p.logger.Warn("preview: read failed", "path", m.path, "error", m.err)
			return nil
		}
		p.raw = m.data
		p.truncated = false
		if len(p.raw) > maxPreviewBytes {
			p.raw = p.raw[:maxPreviewBytes]
			p.truncated = true
		}
		p.render()

	case tea.KeyMsg:
		switch m.String() {
		case "j", "down":
			if p.scroll < len(p.lines)-p.visibleHeight() {
				p.scroll++
			}
		case "k", "up":
			if p.scroll > 0 {
				p.scroll--
			}
		case "ctrl+d":
			p.scroll += p.visibleHeight() / 2
			if max := len(p.lines) - p.visibleHeight(); p.scroll > max {
				p.scroll = max
			}
			if p.scroll < 0 {
				p.scroll = 0
			}
		case "ctrl+u":
			p.scroll -= p.visibleHeight() / 2
			if p.scroll < 0 {
				p.scroll = 0
			}
		case "g":
			p.scroll = 0
		case "G":
			if max := len(p.lines) - p.visibleHeight(); max > 0 {
				p.scroll = max
			}
		}
	}
	return nil
}

// render produces display lines from the raw content at the current width.
func (p *Preview) render() {
	if isBinary(p.raw) {
		p.lines = []string{styles.Muted.Render("Binary file, no preview")}
		return
	}
	content := string(p.raw)

	var out string
	if isMarkdown(p.path) {
		rendered, err := renderMarkdown(content, p.contentWidth())
		if err != nil {
			p.logger.Warn("preview: markdown render failed", "path", p.path, "error", err)
			out = content
		} else {
			out = rendered
		}
	} else {
		out = highlight(content, p.path)
	}

	p.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	if p.truncated {
		p.lines = append(p.lines, styles.Muted.Render("... (file truncated)"))
	}
}

func (p *Preview) contentWidth() int {
	w := p.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (p *Preview) visibleHeight() int {
	h := p.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the pane interior.
func (p *Preview) View() string {
	var sb strings.Builder
	title := "Preview"
	if p.path != "" {
		title = pathutil.Leaf(p.path)
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")

	switch {
	case p.path == "":
		sb.WriteString(styles.Muted.Render("Select a file to preview"))
	case p.loading:
		sb.WriteString(styles.Muted.Render("Loading..."))
	case p.err != nil:
		sb.WriteString(styles.ErrorText.Render(p.err.Error()))
	default:
		end := p.scroll + p.visibleHeight()
		if end > len(p.lines) {
			end = len(p.lines)
		}
		for i := p.scroll; i < end; i++ {
			sb.WriteString(p.lines[i])
			if i < end-1 {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// isBinary sniffs for a NUL byte in the leading chunk, the same heuristic
// git uses.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

func isMarkdown(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.MarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// highlight runs chroma over the content, picking the lexer from the file
// name. On failure the plain content comes back unstyled.
func highlight(content, filename string) string {
	lexer := lexers.Match(path.Base(filename))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var sb strings.Builder
	formatter := formatters.Get("terminal256")
	if err := formatter.Format(&sb, chromastyles.Get(styles.SyntaxTheme), it); err != nil {
		return content
	}
	return sb.String()
}
