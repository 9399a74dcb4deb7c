package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of an indented tree.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Dimmed bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items with box-drawing connectors and right-aligned
// detail badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	for i, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				prefix.WriteString(treePipe)
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		title := item.Title
		if item.Dimmed {
			title = Dim(title)
		}
		contents[i] = StyleDim.Render(prefix.String()) + title
		width = max(width, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := width - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
