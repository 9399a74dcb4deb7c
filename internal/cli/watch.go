package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/cli/formatter"
	"github.com/alexanderramin/dayline/internal/domain"
)

type watchKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Cutoff key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Cutoff: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle cutoff")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Reload, k.Help, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Cutoff, k.Reload},
		{k.Help, k.Quit},
	}
}

type scheduleLoadedMsg struct {
	day  string
	resp *app.DayScheduleResponse
	err  error
}

type minuteTickMsg time.Time

// watchModel shows one day's schedule and reloads it every minute, so the
// cutoff follows the clock while viewing today.
type watchModel struct {
	app    *App
	day    string
	follow bool
	resp   *app.DayScheduleResponse
	err    error
	keys   watchKeyMap
	help   help.Model
}

func newWatchModel(a *App, day string) watchModel {
	return watchModel{
		app:    a,
		day:    day,
		follow: true,
		keys:   newWatchKeyMap(),
		help:   help.New(),
	}
}

func (m watchModel) load() tea.Cmd {
	a, day, follow := m.app, m.day, m.follow
	return func() tea.Msg {
		var now *time.Time
		if follow {
			n := a.now()
			now = &n
		}
		resp, err := a.Schedule.DaySchedule(context.Background(), app.DayScheduleRequest{Day: day, Now: now})
		return scheduleLoadedMsg{day: day, resp: resp, err: err}
	}
}

func minuteTick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return minuteTickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), minuteTick())
}

func (m watchModel) shiftDay(days int) watchModel {
	d, err := time.Parse(domain.DayLayout, m.day)
	if err != nil {
		return m
	}
	m.day = d.AddDate(0, 0, days).Format(domain.DayLayout)
	return m
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleLoadedMsg:
		// Drop answers for a day we already navigated away from.
		if msg.day != m.day {
			return m, nil
		}
		m.resp, m.err = msg.resp, msg.err
		return m, nil

	case minuteTickMsg:
		return m, tea.Batch(m.load(), minuteTick())

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m = m.shiftDay(-1)
			return m, m.load()
		case key.Matches(msg, m.keys.Next):
			m = m.shiftDay(1)
			return m, m.load()
		case key.Matches(msg, m.keys.Today):
			m.day = m.app.now().Format(domain.DayLayout)
			return m, m.load()
		case key.Matches(msg, m.keys.Cutoff):
			m.follow = !m.follow
			return m, m.load()
		case key.Matches(msg, m.keys.Reload):
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var body string
	switch {
	case m.err != nil:
		body = formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	case m.resp == nil:
		body = formatter.Dim("Loading "+m.day+"...") + "\n"
	default:
		body = formatter.FormatSchedule(m.resp, m.app.now())
	}
	status := formatter.Dim("cutoff follows the clock")
	if !m.follow {
		status = formatter.Dim("whole day")
	}
	return body + "\n" + status + "\n" + m.help.View(m.keys)
}

func newDayWatchCmd(a *App) *cobra.Command {
	day := newDateValue(a.now)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live timeline that replans as the clock moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(
				newWatchModel(a, day.Day()),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
