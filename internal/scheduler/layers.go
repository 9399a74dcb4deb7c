package scheduler

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayline/internal/timeline"
)

// run carries the mutable state of one Schedule call.
type run struct {
	grid       timeline.Grid
	policy     Policy
	ledger     *ledger
	startBlock int
	tasks      map[string]Task
	issues     []Issue
}

func newRun(grid timeline.Grid, policy Policy, tasks []Task, startBlock int) *run {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return &run{
		grid:       grid,
		policy:     policy,
		ledger:     newLedger(grid.Blocks()),
		startBlock: startBlock,
		tasks:      byID,
	}
}

func quoted(s string) string {
	return `"` + s + `"`
}

func (r *run) report(t Task, kind IssueKind, msg string) {
	r.issues = append(r.issues, Issue{TaskID: t.ID, Kind: kind, Message: msg})
}

// rejectOnCollision records a collision issue and returns true when any
// block of the range is already taken.
func (r *run) rejectOnCollision(t Task, position, length int) bool {
	ids := r.ledger.collidingTaskIDs(position, length)
	if len(ids) == 0 {
		return false
	}
	if limit := r.policy.CollisionNameLimit; limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, quoted(r.tasks[id].Description))
	}
	r.report(t, IssueCollision, fmt.Sprintf("Task %s collides with %s", quoted(t.Description), strings.Join(names, " and ")))
	return true
}

// placeFixed pins every exact-time task to its requested block, in input
// order. The cutoff does not apply.
func (r *run) placeFixed(tasks []Task) {
	for _, t := range tasks {
		minute, err := timeline.ParseClock(t.ExactTime)
		if err != nil {
			r.report(t, IssueMalformedTime, fmt.Sprintf("Invalid time format for task %s", quoted(t.Description)))
			continue
		}
		position := r.grid.MinutesToBlock(minute)
		length := r.grid.DurationToBlocks(t.DurationMin)
		if position+length > r.grid.EndBlock() {
			r.report(t, IssueOverflow, fmt.Sprintf("Task %s doesn't fit in day", quoted(t.Description)))
			continue
		}
		if r.rejectOnCollision(t, position, length) {
			continue
		}
		r.ledger.occupy(position, length, t.ID)
	}
}

// windowBounds converts a window to the blocks containing Start and End.
// A task may occupy the End block itself. End is shifted by a day when the
// window wraps midnight.
func (r *run) windowBounds(w *Window) (first, last int, ok bool) {
	if w == nil || w.Start == "" || w.End == "" {
		return 0, 0, false
	}
	startMin, err := timeline.ParseClock(w.Start)
	if err != nil || startMin >= timeline.MinutesPerDay {
		return 0, 0, false
	}
	endMin, err := timeline.ParseClock(w.End)
	if err != nil {
		return 0, 0, false
	}
	first = r.grid.MinutesToBlock(startMin)
	last = r.grid.MinutesToBlock(endMin)
	if endMin <= startMin {
		last += r.grid.Blocks()
	}
	return first, last, true
}

// placeWindowed places approximate-window tasks best rank first, first-fit
// inside the cutoff-clamped window.
func (r *run) placeWindowed(tasks []Task) {
	for _, t := range r.policy.rank(tasks) {
		first, last, ok := r.windowBounds(t.Window)
		if !ok {
			r.report(t, IssueMalformedTime, fmt.Sprintf("Invalid time block for task %s", quoted(t.Description)))
			continue
		}
		first = max(first, r.startBlock)
		length := r.grid.DurationToBlocks(t.DurationMin)

		position := r.ledger.firstFit(first, last, length)
		if position == 0 {
			label := t.Window.Label
			if label == "" {
				label = "window"
			}
			if r.policy.WindowFallback {
				if fallback := r.ledger.firstFit(r.startBlock, r.grid.Blocks(), length); fallback != 0 {
					r.report(t, IssueWindowRelocated, fmt.Sprintf("Task %s cannot fit into the %s; moved to %s",
						quoted(t.Description), label, timeline.FormatClock(r.grid.BlockToMinutes(fallback))))
					r.ledger.occupy(fallback, length, t.ID)
					continue
				}
			}
			r.report(t, IssueWindowMiss, fmt.Sprintf("Task %s cannot fit into the %s", quoted(t.Description), label))
			continue
		}
		if r.rejectOnCollision(t, position, length) {
			continue
		}
		r.ledger.occupy(position, length, t.ID)
	}
}

// placeFloating places unconstrained tasks best rank first, first-fit from
// the cutoff to the end of the day.
func (r *run) placeFloating(tasks []Task) {
	for _, t := range r.policy.rank(tasks) {
		length := r.grid.DurationToBlocks(t.DurationMin)
		position := r.ledger.firstFit(r.startBlock, r.grid.Blocks(), length)
		if position == 0 {
			r.report(t, IssueExhausted, fmt.Sprintf("Task %s cannot be scheduled", quoted(t.Description)))
			continue
		}
		if r.rejectOnCollision(t, position, length) {
			continue
		}
		r.ledger.occupy(position, length, t.ID)
	}
}

// findGaps merges consecutive free blocks from the start block to the end
// of the day.
func (r *run) findGaps() []Gap {
	var gaps []Gap
	size := r.grid.BlockMinutes()
	runStart := 0
	flush := func(end int) {
		if runStart == 0 {
			return
		}
		length := end - runStart
		startMin := r.grid.BlockToMinutes(runStart)
		gaps = append(gaps, Gap{
			StartBlock:  runStart,
			Length:      length,
			StartMinute: startMin,
			EndMinute:   startMin + length*size,
			Minutes:     length * size,
		})
		runStart = 0
	}
	for b := r.startBlock; b <= r.grid.Blocks(); b++ {
		if r.ledger.isFree(b) {
			if runStart == 0 {
				runStart = b
			}
			continue
		}
		flush(b)
	}
	flush(r.grid.EndBlock())
	return gaps
}
