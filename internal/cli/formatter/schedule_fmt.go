package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/timeline"
)

func clockRange(start, end int) string {
	return timeline.FormatClock(start) + "-" + timeline.FormatClock(end)
}

func schedulerConstraint(t scheduler.Task) string {
	switch {
	case t.ExactTime != "":
		return "at " + t.ExactTime
	case t.Window != nil && t.Window.Label != "":
		return t.Window.Label
	case t.Window != nil:
		return t.Window.Start + "-" + t.Window.End
	default:
		return ""
	}
}

// FormatSchedule renders the merged timeline of one day: placed tasks and
// unaccounted gaps in time order, then unscheduled tasks and the issue
// messages. now only affects the day label.
func FormatSchedule(resp *app.DayScheduleResponse, now time.Time) string {
	res := resp.Result
	var b strings.Builder

	b.WriteString(StyleHeader.Render(strings.ToUpper(DayLabel(resp.Day, now))) + "  " + Dim(resp.Day) + "\n")

	from := 0
	if resp.Cutoff != nil {
		from = res.Grid.BlockToMinutes(res.CutoffBlock)
		b.WriteString(Dim("planning from "+timeline.FormatClock(*resp.Cutoff)) + "\n")
	}
	if span := timeline.MinutesPerDay - from; span > 0 {
		occupied := 0
		for _, p := range res.Placed {
			occupied += max(0, p.EndMinute-max(p.StartMinute, from))
		}
		b.WriteString(RenderLoad(float64(occupied)/float64(span), 24) + "  " +
			Dim(FormatMinutes(occupied)+" planned") + "\n")
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(res.Schedule))
	for _, e := range res.Schedule {
		switch e.Kind {
		case scheduler.EntryTask:
			p := e.Task
			q := domain.Quality(p.Quality)
			rows = append(rows, []string{
				clockRange(p.StartMinute, p.EndMinute),
				StyleGreen.Render("●"),
				Bold(p.Description),
				FormatMinutes(p.EndMinute - p.StartMinute),
				QualityBadge(q),
				Dim(schedulerConstraint(p.Task)),
			})
		case scheduler.EntryGap:
			g := e.Gap
			rows = append(rows, []string{
				Dim(clockRange(g.StartMinute, g.EndMinute)),
				Dim("·"),
				Dim("unaccounted"),
				Dim(FormatMinutes(g.Minutes)),
				"",
				"",
			})
		}
	}
	if len(rows) > 0 {
		b.WriteString(RenderAlignedTable(
			[]string{"TIME", "", "TASK", "LEN", "Q", "WANTS"},
			[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
			rows,
		))
	}

	if len(res.Unscheduled) > 0 {
		b.WriteString("\n" + Header("Unscheduled") + "\n")
		for _, t := range res.Unscheduled {
			line := fmt.Sprintf("%s %s  %s", StyleRed.Render("○"), t.Description, Dim(FormatMinutes(t.DurationMin)))
			if c := schedulerConstraint(t); c != "" {
				line += "  " + Dim(c)
			}
			b.WriteString(line + "\n")
		}
	}
	if len(res.Issues) > 0 {
		b.WriteString("\n" + Header("Errors") + "\n")
		b.WriteString(FormatIssues(res.Issues))
	}
	return b.String()
}

// FormatIssues renders one colored line per issue.
func FormatIssues(issues []scheduler.Issue) string {
	var b strings.Builder
	for _, is := range issues {
		b.WriteString(IssueColor(is.Kind).Render("✖ "+is.Message) + "\n")
	}
	return b.String()
}

// FormatCanPlace renders the outcome of a dry-run check.
func FormatCanPlace(resp *app.CanPlaceResponse) string {
	if resp.Placeable && resp.Placement != nil {
		p := resp.Placement
		out := StyleGreen.Render("✔ Fits") + " " + Bold(clockRange(p.StartMinute, p.EndMinute)) + "\n"
		return out + FormatIssues(resp.Issues)
	}
	return StyleRed.Render("✖ Does not fit") + "\n" + FormatIssues(resp.Issues)
}

// FormatAutoFill renders accepted and rejected candidates of a bulk fill.
func FormatAutoFill(resp *app.AutoFillResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s accepted, %s rejected\n",
		StyleGreen.Render(fmt.Sprint(len(resp.Accepted))),
		StyleRed.Render(fmt.Sprint(len(resp.Rejected)))))
	for _, t := range resp.Accepted {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", StyleGreen.Render("✔"), t.Description, Dim(FormatMinutes(t.EstimatedMin))))
	}
	for _, r := range resp.Rejected {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("✖"), r.Task.Description))
		for _, reason := range r.Reasons {
			b.WriteString("      " + Dim(reason) + "\n")
		}
	}
	return b.String()
}
