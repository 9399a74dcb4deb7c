package scheduler

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/dayline/internal/timeline"
)

// Scheduler is immutable configuration; every call builds its own ledger,
// so one Scheduler may serve concurrent callers.
type Scheduler struct {
	grid   timeline.Grid
	policy Policy
}

// New creates a Scheduler over the given grid and policy.
func New(grid timeline.Grid, policy Policy) *Scheduler {
	return &Scheduler{grid: grid, policy: policy}
}

// NewDefault creates a Scheduler with 15-minute blocks and DefaultPolicy.
func NewDefault() *Scheduler {
	return New(timeline.Canonical(), DefaultPolicy())
}

func (s *Scheduler) Grid() timeline.Grid { return s.grid }

func (s *Scheduler) Policy() Policy { return s.policy }

// Schedule places tasks for one day. cutoff is "now" in minutes when
// scheduling today and nil for any other day.
//
// The returned error is reserved for caller bugs (ErrInvalidTask,
// ErrInvalidCutoff). Tasks that cannot be placed are reported in
// Result.Issues and Result.Unscheduled.
func (s *Scheduler) Schedule(tasks []Task, cutoff *int) (*Result, error) {
	if err := validate(tasks); err != nil {
		return nil, err
	}
	startBlock := 1
	if cutoff != nil {
		if *cutoff < 0 || *cutoff >= timeline.MinutesPerDay {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidCutoff, *cutoff)
		}
		startBlock = s.grid.MinutesToBlock(*cutoff)
	}

	r := newRun(s.grid, s.policy, tasks, startBlock)

	var fixed, windowed, floating []Task
	for _, t := range tasks {
		switch {
		case t.ExactTime != "":
			fixed = append(fixed, t)
		case t.Window != nil:
			windowed = append(windowed, t)
		default:
			floating = append(floating, t)
		}
	}
	r.placeFixed(fixed)
	r.placeWindowed(windowed)
	r.placeFloating(floating)

	res := &Result{
		Gaps:        r.findGaps(),
		Issues:      r.issues,
		CutoffBlock: startBlock,
		Grid:        s.grid,
	}
	for _, t := range tasks {
		sp, ok := r.ledger.placement(t.ID)
		if !ok {
			res.Unscheduled = append(res.Unscheduled, t)
			continue
		}
		start := s.grid.BlockToMinutes(sp.position)
		res.Placed = append(res.Placed, PlacedTask{
			Task:        t,
			Position:    sp.position,
			Length:      sp.length,
			StartMinute: start,
			EndMinute:   start + sp.length*s.grid.BlockMinutes(),
		})
	}
	sort.SliceStable(res.Placed, func(i, j int) bool {
		return res.Placed[i].Position < res.Placed[j].Position
	})
	res.Schedule = merge(res.Placed, res.Gaps, res.Unscheduled)
	return res, nil
}

// merge interleaves placed tasks and gaps by start minute, then appends the
// unscheduled tasks in input order.
func merge(placed []PlacedTask, gaps []Gap, unscheduled []Task) []Entry {
	out := make([]Entry, 0, len(placed)+len(gaps)+len(unscheduled))
	ti, gi := 0, 0
	for ti < len(placed) || gi < len(gaps) {
		switch {
		case ti < len(placed) && gi < len(gaps):
			if gaps[gi].StartMinute < placed[ti].StartMinute {
				out = append(out, Entry{Kind: EntryGap, Gap: &gaps[gi]})
				gi++
			} else {
				out = append(out, Entry{Kind: EntryTask, Task: &placed[ti]})
				ti++
			}
		case ti < len(placed):
			out = append(out, Entry{Kind: EntryTask, Task: &placed[ti]})
			ti++
		default:
			out = append(out, Entry{Kind: EntryGap, Gap: &gaps[gi]})
			gi++
		}
	}
	for i := range unscheduled {
		out = append(out, Entry{Kind: EntryUnscheduled, Unscheduled: &unscheduled[i]})
	}
	return out
}

func validate(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task at index %d has no id", ErrInvalidTask, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate task id %q", ErrInvalidTask, t.ID)
		}
		seen[t.ID] = true
		if t.DurationMin <= 0 {
			return fmt.Errorf("%w: task %q has non-positive duration %d", ErrInvalidTask, t.ID, t.DurationMin)
		}
	}
	return nil
}

// Feasibility is the outcome of a dry-run placement of one candidate.
type Feasibility struct {
	Placeable bool
	Placement *PlacedTask
	Issues    []Issue
	Result    *Result
}

// Check reschedules existing plus candidate from scratch and reports
// whether the candidate was placed. existing is not modified.
func (s *Scheduler) Check(candidate Task, existing []Task, cutoff *int) (*Feasibility, error) {
	all := make([]Task, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, candidate)

	res, err := s.Schedule(all, cutoff)
	if err != nil {
		return nil, err
	}
	f := &Feasibility{Result: res, Issues: res.IssuesFor(candidate.ID)}
	if p, ok := res.Placement(candidate.ID); ok {
		f.Placeable = true
		f.Placement = &p
	}
	return f, nil
}

// CanPlace reports whether candidate fits alongside existing.
func (s *Scheduler) CanPlace(candidate Task, existing []Task, cutoff *int) (bool, error) {
	f, err := s.Check(candidate, existing, cutoff)
	if err != nil {
		return false, err
	}
	return f.Placeable, nil
}
