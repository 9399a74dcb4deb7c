package timeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidClock = errors.New("invalid clock time")

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock parses "H:MM" or "HH:MM" into minutes since midnight.
// "24:00" is accepted and yields 1440.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidClock, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
// 1440 renders as "24:00".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
