package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/timeline"
)

// TimeBlock is a named approximate window such as "morning" that tasks can
// reference instead of spelling out start and end.
type TimeBlock struct {
	ID        string
	Name      string
	Start     string
	End       string
	CreatedAt time.Time
}

func (b *TimeBlock) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("time block name is required")
	}
	start, err := timeline.ParseClock(b.Start)
	if err != nil {
		return fmt.Errorf("time block %q start: %w", b.Name, err)
	}
	if start >= timeline.MinutesPerDay {
		return fmt.Errorf("time block %q start: %w: 24:00 cannot open a window", b.Name, timeline.ErrInvalidClock)
	}
	if _, err := timeline.ParseClock(b.End); err != nil {
		return fmt.Errorf("time block %q end: %w", b.Name, err)
	}
	return nil
}

// Wraps reports whether the block runs past midnight.
func (b *TimeBlock) Wraps() bool {
	start, err1 := timeline.ParseClock(b.Start)
	end, err2 := timeline.ParseClock(b.End)
	return err1 == nil && err2 == nil && end <= start
}
