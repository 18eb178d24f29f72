// Package browser is the interactive terminal UI for the knowledge base:
// a document tree with cursor navigation, folder folding, inline preview
// and editor hand-off.
package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/tree"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modePreview
	modeConfirmDelete
	modeNewDoc
)

// Model is the main model for the browser TUI.
type Model struct {
	app  *app.App
	mode mode

	rows         []tree.Row
	cursor       int
	scrollOffset int

	filterInput   textinput.Model
	filteredDocs  []*models.Document
	filterCursor  int
	filterApplied bool

	pendingDelete *models.Document

	preview    viewport.Model
	previewDoc *models.Document

	titleInput textinput.Model

	keys   KeyMap
	help   help.Model
	width  int
	height int

	statusMessage string
}

// New builds the browser model over the application context.
func New(a *app.App) Model {
	filter := textinput.New()
	filter.Placeholder = "filter documents..."
	filter.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = "document title"
	title.Prompt = "> "
	title.CharLimit = 120

	m := Model{
		app:         a,
		filterInput: filter,
		titleInput:  title,
		preview:     viewport.New(80, 20),
		keys:        keys,
		help:        help.New(),
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload rebuilds the flattened tree rows from the current store state and
// clamps the cursor.
func (m *Model) reload() {
	nodes := tree.Build(m.app.Index, tree.Options{ActiveDocumentID: m.activeDocumentID()})
	m.rows = tree.Flatten(nodes)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) activeDocumentID() string {
	if cur := m.app.Session.Current(); cur != nil {
		return cur.ID
	}
	return ""
}

// applyFilter recomputes the filtered document list for the current query.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.filteredDocs = nil
	if query == "" {
		m.filterApplied = false
		return
	}
	m.filterApplied = true
	for _, d := range m.app.Store.Documents() {
		if strings.Contains(strings.ToLower(d.Title), query) ||
			strings.Contains(strings.ToLower(d.Content), query) {
			m.filteredDocs = append(m.filteredDocs, d)
		}
	}
}

func (m *Model) selectedNode() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

func (m *Model) viewportHeight() int {
	// Header, blank line, blank line, footer.
	h := m.height - 4
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) clampScroll() {
	h := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
