package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kbtools/kb/pkg/tree"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle      = lipgloss.NewStyle().Bold(true)
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle      = lipgloss.NewStyle().Faint(true)
	placeholderStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

func (m Model) View() string {
	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys)
	}

	var header, body string
	switch m.mode {
	case modeFilter:
		header = headerStyle.Render("Filter")
		body = m.renderFilter()
	case modePreview:
		header = headerStyle.Render(m.app.Session.BreadcrumbFor(m.previewDoc.ID))
		body = m.preview.View()
	case modeConfirmDelete:
		header = headerStyle.Render("Knowledge Base")
		body = m.renderTree() + "\n" +
			fmt.Sprintf("Delete %q? [y/N]", m.pendingDelete.Title)
	case modeNewDoc:
		header = headerStyle.Render("New Document")
		body = m.titleInput.View()
	default:
		header = headerStyle.Render("Knowledge Base")
		body = m.renderTree()
	}

	footer := m.help.View(m.keys)
	if m.statusMessage != "" {
		footer = statusStyle.Render(m.statusMessage) + "\n" + footer
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return placeholderStyle.Render("No documents yet. Create one to get started.")
	}

	var b strings.Builder

	h := m.viewportHeight()
	start := m.scrollOffset
	end := start + h
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		row := m.rows[i]
		node := row.Node

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▶ ")
		}
		indent := strings.Repeat("  ", row.Depth)

		var line string
		if node.Kind == tree.KindFolder {
			fold := "▶ "
			if node.Expanded {
				fold = "▼ "
			}
			line = fmt.Sprintf("%s%s%s%s %s", cursor, indent, fold, node.Icon, node.Name)
			if i == m.cursor {
				line = cursorStyle.Render(line)
			}
		} else {
			line = fmt.Sprintf("%s%s  %s %s", cursor, indent, node.Icon, node.Name)
			if node.Active {
				line = activeStyle.Render(line)
			}
			if i == m.cursor {
				line = cursorStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rows) > h {
		b.WriteString(statusStyle.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderFilter() string {
	var b strings.Builder
	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")

	if !m.filterApplied {
		b.WriteString(statusStyle.Render("Type to filter by title or content"))
		return b.String()
	}
	if len(m.filteredDocs) == 0 {
		b.WriteString(statusStyle.Render("No matching documents"))
		return b.String()
	}

	for i, d := range m.filteredDocs {
		cursor := "  "
		if i == m.filterCursor {
			cursor = cursorStyle.Render("▶ ")
		}
		line := fmt.Sprintf("%s%s %s", cursor, d.Category.Icon(), d.Title)
		if i == m.filterCursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
