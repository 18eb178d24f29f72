package tree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EmptyPlaceholder is rendered when the hierarchy contains nothing at all.
const EmptyPlaceholder = "No documents yet. Create one to get started."

var (
	activeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	folderStyle      = lipgloss.NewStyle().Bold(true)
	placeholderStyle = lipgloss.NewStyle().Faint(true)
	foldClosedMark   = "▶ "
	foldOpenMark     = "▼ "
	leafMark         = "  "
)

// RenderOptions control string rendering of a built tree.
type RenderOptions struct {
	// Plain disables styling for non-terminal output.
	Plain bool
	// Placeholder overrides EmptyPlaceholder when the tree is empty.
	Placeholder string
}

// Render produces the indented textual tree for the given nodes. Folders
// show a fold indicator when they have children; collapsed folders keep
// their children out of view without dropping them from the structure. An
// empty tree renders a placeholder line instead of nothing.
func Render(nodes []*Node, opts RenderOptions) string {
	if len(nodes) == 0 {
		placeholder := opts.Placeholder
		if placeholder == "" {
			placeholder = EmptyPlaceholder
		}
		if opts.Plain {
			return placeholder + "\n"
		}
		return placeholderStyle.Render(placeholder) + "\n"
	}

	var b strings.Builder
	for _, row := range Flatten(nodes) {
		b.WriteString(renderRow(row, opts))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(row Row, opts RenderOptions) string {
	indent := strings.Repeat("  ", row.Depth)

	switch row.Node.Kind {
	case KindFolder:
		fold := leafMark
		if row.Node.HasChildren() {
			if row.Node.Expanded {
				fold = foldOpenMark
			} else {
				fold = foldClosedMark
			}
		}
		line := fmt.Sprintf("%s%s%s %s", indent, fold, row.Node.Icon, row.Node.Name)
		if opts.Plain {
			return line
		}
		return folderStyle.Render(line)
	default:
		line := fmt.Sprintf("%s%s%s %s", indent, leafMark, row.Node.Icon, row.Node.Name)
		if row.Node.Active {
			if opts.Plain {
				return line + " *"
			}
			return activeStyle.Render(line)
		}
		return line
	}
}
