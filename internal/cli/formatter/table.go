package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls horizontal placement of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders an aligned table with a header separator line.
// Widths are measured with lipgloss so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	return RenderAlignedTable(headers, nil, rows)
}

// RenderAlignedTable is RenderTable with per-column alignment. Missing
// entries in align default to AlignLeft.
func RenderAlignedTable(headers []string, align []Align, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)
	alignOf := func(i int) Align {
		if i < len(align) {
			return align[i]
		}
		return AlignLeft
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(style(cell))
			} else {
				b.WriteString(style(cell))
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
