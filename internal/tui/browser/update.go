package browser

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/tree"
)

type editorFinishedMsg struct {
	path string
	doc  *models.Document
	err  error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.preview.Width = msg.Width - 2
		m.preview.Height = m.viewportHeight()
		return m, nil

	case editorFinishedMsg:
		return m.finishEdit(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modePreview:
			return m.updatePreview(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeNewDoc:
			return m.updateNewDoc(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.viewportHeight() / 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.viewportHeight() / 2
		if m.cursor > len(m.rows)-1 {
			m.cursor = len(m.rows) - 1
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		m.cursor = len(m.rows) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if node := m.selectedNode(); node != nil && node.Kind == tree.KindFolder {
			if err := m.app.Store.SetExpanded(node.ID, !node.Expanded); err != nil {
				m.statusMessage = err.Error()
			}
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		node := m.selectedNode()
		if node == nil {
			return m, nil
		}
		if node.Kind == tree.KindFolder {
			if err := m.app.Store.SetExpanded(node.ID, !node.Expanded); err != nil {
				m.statusMessage = err.Error()
			}
			m.reload()
			return m, nil
		}
		m.app.Session.Open(node.ID)
		m.reload()
		return m.enterPreview(node.Document), nil

	case key.Matches(msg, m.keys.Edit):
		if node := m.selectedNode(); node != nil && node.Kind == tree.KindDocument {
			return m.startEdit(node.Document)
		}
		return m, nil

	case key.Matches(msg, m.keys.NewDoc):
		m.mode = modeNewDoc
		m.titleInput.SetValue("")
		m.titleInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if node := m.selectedNode(); node != nil && node.Kind == tree.KindDocument {
			m.pendingDelete = node.Document
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeFilter
		m.filterCursor = 0
		m.filterInput.SetValue("")
		m.filterInput.Focus()
		m.applyFilter()
		return m, nil
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.filterInput.Blur()
		m.filterApplied = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.filterCursor > 0 {
			m.filterCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.filterCursor < len(m.filteredDocs)-1 {
			m.filterCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.filterCursor < len(m.filteredDocs) {
			doc := m.filteredDocs[m.filterCursor]
			m.app.Session.Open(doc.ID)
			m.filterInput.Blur()
			m.filterApplied = false
			m.reload()
			return m.enterPreview(doc), nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	if m.filterCursor > len(m.filteredDocs)-1 {
		m.filterCursor = 0
	}
	return m, cmd
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
		m.previewDoc = nil
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.previewDoc != nil {
			return m.startEdit(m.previewDoc)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.pendingDelete
	m.pendingDelete = nil
	m.mode = modeBrowse

	if doc != nil && msg.String() == "y" {
		m.app.Session.Open(doc.ID)
		if err := m.app.Session.Delete(true); err != nil {
			m.statusMessage = err.Error()
		} else {
			m.statusMessage = fmt.Sprintf("Deleted %q", doc.Title)
		}
		m.reload()
	}
	return m, nil
}

func (m Model) updateNewDoc(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.titleInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		title := m.titleInput.Value()
		m.titleInput.Blur()
		m.mode = modeBrowse

		doc, err := m.app.Store.CreateDocument(title, models.CategoryGeneral, m.targetFolderID())
		if err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		m.app.Session.Open(doc.ID)
		m.reload()
		m.statusMessage = fmt.Sprintf("Created %q", doc.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

// targetFolderID picks where a new document lands: the selected folder, or
// the folder of the selected document.
func (m *Model) targetFolderID() string {
	node := m.selectedNode()
	if node == nil {
		return ""
	}
	if node.Kind == tree.KindFolder {
		return node.ID
	}
	return node.Document.FolderID
}

func (m Model) enterPreview(doc *models.Document) Model {
	m.mode = modePreview
	m.previewDoc = doc
	m.preview.Width = m.width - 2
	m.preview.Height = m.viewportHeight()
	m.preview.SetContent(doc.Content)
	m.preview.GotoTop()
	return m
}

// startEdit hands the document off to the external editor via a temp file,
// suspending the TUI while the editor runs.
func (m Model) startEdit(doc *models.Document) (tea.Model, tea.Cmd) {
	editor := m.app.Editor
	if editor == "" {
		editor = "vim"
	}

	f, err := os.CreateTemp("", "kb-*.md")
	if err != nil {
		m.statusMessage = err.Error()
		return m, nil
	}
	path := f.Name()
	if _, err := f.WriteString(doc.Content); err != nil {
		f.Close()
		os.Remove(path)
		m.statusMessage = err.Error()
		return m, nil
	}
	f.Close()

	m.app.Session.Open(doc.ID)
	c := exec.Command(editor, path)
	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, doc: doc, err: err}
	})
}

func (m Model) finishEdit(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	defer os.Remove(msg.path)

	if msg.err != nil {
		m.statusMessage = fmt.Sprintf("editor: %v", msg.err)
		return m, nil
	}
	content, err := os.ReadFile(msg.path)
	if err != nil {
		m.statusMessage = err.Error()
		return m, nil
	}
	if string(content) == msg.doc.Content {
		m.statusMessage = "No changes"
		return m, nil
	}
	if _, err := m.app.Session.Save(msg.doc.Title, string(content), msg.doc.Category); err != nil {
		m.statusMessage = err.Error()
		return m, nil
	}
	m.reload()
	m.statusMessage = fmt.Sprintf("Saved %q", msg.doc.Title)
	return m, nil
}
