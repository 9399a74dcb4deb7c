package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_IsRangeFree(t *testing.T) {
	l := newLedger(96)
	l.occupy(10, 4, "a")

	tests := []struct {
		name   string
		start  int
		length int
		want   bool
	}{
		{"before occupied", 1, 9, true},
		{"touching start", 6, 4, true},
		{"overlapping start", 7, 4, false},
		{"inside", 11, 1, false},
		{"touching end", 14, 3, true},
		{"last block", 96, 1, true},
		{"past end of day", 95, 3, false},
		{"block zero", 0, 1, false},
		{"zero length", 20, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.isRangeFree(tt.start, tt.length))
		})
	}
}

func TestLedger_OccupyRecordsPlacement(t *testing.T) {
	l := newLedger(96)
	l.occupy(37, 4, "standup")

	sp, ok := l.placement("standup")
	require.True(t, ok)
	assert.Equal(t, span{position: 37, length: 4}, sp)
	assert.False(t, l.isFree(37))
	assert.False(t, l.isFree(40))
	assert.True(t, l.isFree(41))

	_, ok = l.placement("missing")
	assert.False(t, ok)
}

func TestLedger_OccupyPanicsOnTakenRange(t *testing.T) {
	l := newLedger(96)
	l.occupy(1, 4, "a")
	assert.Panics(t, func() { l.occupy(4, 2, "b") })
	assert.Panics(t, func() { l.occupy(96, 2, "c") })
}

func TestLedger_CollidingTaskIDs(t *testing.T) {
	l := newLedger(96)
	l.occupy(5, 2, "a")
	l.occupy(7, 2, "b")
	l.occupy(20, 1, "c")

	assert.Equal(t, []string{"a", "b"}, l.collidingTaskIDs(1, 10))
	assert.Equal(t, []string{"b"}, l.collidingTaskIDs(8, 5))
	assert.Empty(t, l.collidingTaskIDs(9, 11))
	assert.Equal(t, []string{"c"}, l.collidingTaskIDs(20, 200), "range is clipped to the day")
}

func TestLedger_FirstFit(t *testing.T) {
	l := newLedger(96)
	l.occupy(1, 10, "a")
	l.occupy(13, 4, "b")

	assert.Equal(t, 11, l.firstFit(1, 96, 2))
	assert.Equal(t, 17, l.firstFit(1, 96, 3))
	assert.Equal(t, 20, l.firstFit(20, 96, 3))
	assert.Equal(t, 0, l.firstFit(1, 12, 3), "window too small")
	assert.Equal(t, 0, l.firstFit(90, 104, 8), "never crosses midnight")
	assert.Equal(t, 89, l.firstFit(89, 104, 8))
}
