package formatter

import (
	"strconv"

	"github.com/alexanderramin/dayline/internal/domain"
)

// TaskConstraint describes when a task wants to run.
func TaskConstraint(t *domain.Task) string {
	switch {
	case t.ExactTime != "":
		return "at " + t.ExactTime
	case t.WindowStart != "" || t.WindowEnd != "":
		label := t.WindowStart + "-" + t.WindowEnd
		if t.WindowName != "" {
			label = t.WindowName + " " + label
		}
		return label
	case t.WindowName != "":
		return t.WindowName
	default:
		return "anytime"
	}
}

// FormatTaskList renders a day's tasks. projectNames maps project ids to
// names and may be nil.
func FormatTaskList(tasks []*domain.Task, projectNames map[string]string) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	headers := []string{"ID", "", "TASK", "EST", "PRIO", "Q", "WHEN", "PROJECT"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		desc := Bold(t.Description)
		if t.Completed {
			desc = Dim(t.Description)
		}
		prio := Dim("-")
		if t.Priority != nil {
			prio = strconv.Itoa(*t.Priority)
		}
		project := Dim("--")
		if t.ProjectID != nil {
			if name, ok := projectNames[*t.ProjectID]; ok {
				project = StylePurple.Render(name)
			} else {
				project = TruncID(*t.ProjectID)
			}
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			DoneMark(t.Completed),
			desc,
			FormatMinutes(t.EstimatedMin),
			prio,
			QualityBadge(t.Quality),
			TaskConstraint(t),
			project,
		})
	}
	return RenderAlignedTable(headers, align, rows)
}
