package formatter

import (
	"github.com/alexanderramin/dayline/internal/domain"
)

func FormatTimeBlockList(blocks []*domain.TimeBlock) string {
	if len(blocks) == 0 {
		return Dim("No time blocks.") + "\n"
	}
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		note := ""
		if b.Wraps() {
			note = Dim("wraps midnight")
		}
		rows = append(rows, []string{Bold(b.Name), b.Start, b.End, note})
	}
	return RenderTable([]string{"NAME", "START", "END", ""}, rows)
}
