package scheduler

import "fmt"

// ledger is the placement state of a single run. owner[i] holds the id of
// the task occupying block i (1-based); "" means free. Never shared
// between runs.
type ledger struct {
	blocks     int
	owner      []string
	placements map[string]span
}

type span struct {
	position int
	length   int
}

func newLedger(blocks int) *ledger {
	return &ledger{
		blocks:     blocks,
		owner:      make([]string, blocks+1),
		placements: make(map[string]span),
	}
}

// isRangeFree reports whether [start, start+length) lies inside the day and
// has no occupied block.
func (l *ledger) isRangeFree(start, length int) bool {
	if start < 1 || length < 1 || start+length-1 > l.blocks {
		return false
	}
	for i := start; i < start+length; i++ {
		if l.owner[i] != "" {
			return false
		}
	}
	return true
}

// occupy records a placement. The range must have passed isRangeFree.
func (l *ledger) occupy(start, length int, taskID string) {
	if !l.isRangeFree(start, length) {
		panic(fmt.Sprintf("scheduler: occupy of non-free range [%d,%d) for %q", start, start+length, taskID))
	}
	for i := start; i < start+length; i++ {
		l.owner[i] = taskID
	}
	l.placements[taskID] = span{position: start, length: length}
}

// collidingTaskIDs returns the ids owning any in-day block of
// [start, start+length), in block order.
func (l *ledger) collidingTaskIDs(start, length int) []string {
	var ids []string
	seen := make(map[string]bool)
	from := max(start, 1)
	to := min(start+length-1, l.blocks)
	for i := from; i <= to; i++ {
		id := l.owner[i]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// firstFit returns the lowest position p in [from, last-length+1] whose
// range is free, or 0.
func (l *ledger) firstFit(from, last, length int) int {
	from = max(from, 1)
	for p := from; p <= last-length+1; p++ {
		if p+length-1 > l.blocks {
			return 0
		}
		if l.isRangeFree(p, length) {
			return p
		}
	}
	return 0
}

func (l *ledger) placement(taskID string) (span, bool) {
	s, ok := l.placements[taskID]
	return s, ok
}

func (l *ledger) isFree(block int) bool {
	return l.owner[block] == ""
}
