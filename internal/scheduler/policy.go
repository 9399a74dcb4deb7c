package scheduler

import (
	"sort"
	"strings"
)

const (
	// DefaultPriority ranks a task without a priority after every task
	// that has one in the usual 1-9 range.
	DefaultPriority = 10
	// DefaultQuality is the rank of a task without a quality letter.
	DefaultQuality = "D"
	// DefaultCollisionNameLimit caps how many colliding descriptions a
	// collision message names.
	DefaultCollisionNameLimit = 2
)

// Policy holds the tunable defaults of a scheduling run.
type Policy struct {
	DefaultPriority int
	DefaultQuality  string

	// WindowFallback retries a windowed task across the rest of the day
	// when its window is full. Off by default: a window miss is reported.
	WindowFallback bool

	// CollisionNameLimit <= 0 names every colliding task.
	CollisionNameLimit int
}

// DefaultPolicy returns the strict, no-fallback policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultPriority:    DefaultPriority,
		DefaultQuality:     DefaultQuality,
		WindowFallback:     false,
		CollisionNameLimit: DefaultCollisionNameLimit,
	}
}

func (p Policy) priorityOf(t Task) int {
	if t.Priority == nil {
		return p.DefaultPriority
	}
	return *t.Priority
}

// qualityOf returns the task's quality letter. Anything outside A-D ranks
// as the default.
func (p Policy) qualityOf(t Task) string {
	switch q := strings.ToUpper(t.Quality); q {
	case "A", "B", "C", "D":
		return q
	}
	return strings.ToUpper(p.DefaultQuality)
}

// rank returns a copy of tasks ordered by ascending priority, then
// ascending quality letter (A first). Ties keep input order.
func (p Policy) rank(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		pa, pb := p.priorityOf(a), p.priorityOf(b)
		if pa != pb {
			return pa < pb
		}
		return p.qualityOf(a) < p.qualityOf(b)
	})
	return out
}
