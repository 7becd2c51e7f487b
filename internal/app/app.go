// Package app wires the panes together: the file browser on the left, the
// preview on the right, a tab strip for open files, and a status line for
// toasts and today's events.
package app

import (
	"log/slog"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nodian/nodian/internal/browser"
	"github.com/nodian/nodian/internal/editor"
	"github.com/nodian/nodian/internal/events"
	"github.com/nodian/nodian/internal/msg"
	"github.com/nodian/nodian/internal/preview"
	"github.com/nodian/nodian/internal/styles"
)

// Pane identifies the focused pane.
type Pane int

const (
	PaneTree Pane = iota
	PanePreview
)

const dividerWidth = 1

type tickMsg time.Time

// eventsLoadedMsg carries today's calendar entries for the status line.
type eventsLoadedMsg struct {
	events []events.Event
	err    error
}

// Model is the root bubbletea model.
type Model struct {
	browser *browser.Browser
	shell   *editor.Shell
	preview *preview.Preview
	store   *events.Store // nil when the events database failed to open
	logger  *slog.Logger

	focus  Pane
	width  int
	height int

	statusMsg     string
	statusIsError bool
	statusExpiry  time.Time

	today []events.Event

	treeWidth int
	treePct   int
}

// New builds the root model. store may be nil; the status line then simply
// omits the events summary. treePct is the tree pane's window share.
func New(b *browser.Browser, shell *editor.Shell, pv *preview.Preview, store *events.Store, treePct int, logger *slog.Logger) *Model {
	if treePct <= 0 {
		treePct = 30
	}
	return &Model{
		browser: b,
		shell:   shell,
		preview: pv,
		store:   store,
		treePct: treePct,
		logger:  logger,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.browser.Start(), tickCmd()}
	if m.store != nil {
		cmds = append(cmds, m.loadToday())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) loadToday() tea.Cmd {
	return func() tea.Msg {
		evs, err := m.store.ForDate(time.Now().Format("2006-01-02"))
		return eventsLoadedMsg{events: evs, err: err}
	}
}

func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.layout()
		return m, nil

	case tickMsg:
		if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, tickCmd()

	case msg.ToastMsg:
		m.statusMsg = message.Message
		m.statusIsError = message.IsError
		m.statusExpiry = time.Now().Add(message.Duration)
		return m, nil

	case eventsLoadedMsg:
		if message.err != nil {
			m.logger.Warn("app: events load failed", "error", message.err)
			return m, nil
		}
		m.today = message.events
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)
	}

	// Everything else is pipeline traffic for the panes; each ignores
	// messages that are not its own.
	return m, tea.Batch(m.browser.Update(message), m.preview.Update(message))
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An active inline edit or modal owns the keyboard.
	if m.browser.Editing() {
		return m, m.browser.Update(k)
	}

	switch k.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.focus == PaneTree {
			m.focus = PanePreview
		} else {
			m.focus = PaneTree
		}
		return m, nil
	}

	if m.focus == PaneTree {
		return m, m.browser.Update(k)
	}

	switch k.String() {
	case "]":
		return m, m.shell.NextFile()
	case "[":
		return m, m.shell.PrevFile()
	case "x":
		return m, m.shell.CloseActive()
	}
	return m, m.preview.Update(k)
}

// layout splits the window between the panes and pushes the inner sizes
// down. The tree takes 30% with a floor wide enough for names.
func (m *Model) layout() {
	m.treeWidth = m.width * m.treePct / 100
	if m.treeWidth < 24 {
		m.treeWidth = 24
	}
	previewWidth := m.width - m.treeWidth - dividerWidth
	if previewWidth < 20 {
		previewWidth = 20
	}

	// One line each for the tab strip and status line, two for the panel
	// borders, two for its padding columns.
	paneHeight := m.height - 2
	m.browser.SetSize(m.treeWidth-4, paneHeight-2)
	m.preview.SetSize(previewWidth-4, paneHeight-2)
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	paneHeight := m.height - 2

	treeStyle := styles.PanelInactive
	previewStyle := styles.PanelInactive
	if m.focus == PaneTree {
		treeStyle = styles.PanelActive
	} else {
		previewStyle = styles.PanelActive
	}

	previewWidth := m.width - m.treeWidth - dividerWidth
	tree := treeStyle.Width(m.treeWidth - 2).Height(paneHeight - 2).Render(m.browser.View())
	pv := previewStyle.Width(previewWidth - 2).Height(paneHeight - 2).Render(m.preview.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, " ", pv)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.shell.TabBar(m.width),
		body,
		m.statusLine(),
	)
}

// statusLine shows an active toast, else key hints plus today's events.
func (m *Model) statusLine() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		return style.Render(m.statusMsg)
	}

	hints := styles.KeyHint.Render("a new file · A new folder · r rename · d delete · c root · tab focus · q quit")
	if len(m.today) == 0 {
		return hints
	}
	next := m.today[len(m.today)-1]
	label := "today: " + next.Title
	if n := len(m.today); n > 1 {
		label += " (+" + strconv.Itoa(n-1) + ")"
	}
	return hints + " " + styles.Muted.Render(label)
}
