package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/timeline"
)

// clockValue is an optional HH:MM flag. The zero value is unset.
type clockValue struct {
	s string
}

var _ pflag.Value = (*clockValue)(nil)

func (c *clockValue) String() string { return c.s }

func (c *clockValue) Set(s string) error {
	m, err := timeline.ParseClock(s)
	if err != nil {
		return err
	}
	c.s = timeline.FormatClock(m)
	return nil
}

func (c *clockValue) Type() string { return "HH:MM" }

func (c *clockValue) IsSet() bool { return c.s != "" }

// Minutes returns the parsed value. Only valid when IsSet.
func (c *clockValue) Minutes() int {
	m, _ := timeline.ParseClock(c.s)
	return m
}

// dateValue is a YYYY-MM-DD flag that also accepts "today", "tomorrow" and
// "yesterday" relative to the app clock.
type dateValue struct {
	day string
	now func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(now func() time.Time) *dateValue {
	return &dateValue{now: now}
}

func (d *dateValue) String() string { return d.day }

func (d *dateValue) Set(s string) error {
	switch s {
	case "today":
		d.day = d.now().Format(domain.DayLayout)
	case "tomorrow":
		d.day = d.now().AddDate(0, 0, 1).Format(domain.DayLayout)
	case "yesterday":
		d.day = d.now().AddDate(0, 0, -1).Format(domain.DayLayout)
	default:
		if _, err := time.Parse(domain.DayLayout, s); err != nil {
			return fmt.Errorf("use YYYY-MM-DD, today, tomorrow or yesterday")
		}
		d.day = s
	}
	return nil
}

func (d *dateValue) Type() string { return "date" }

// Day returns the chosen day, or today when the flag was not given.
func (d *dateValue) Day() string {
	if d.day == "" {
		return d.now().Format(domain.DayLayout)
	}
	return d.day
}

// atClock returns the instant on day at the given minute, in now's location.
func atClock(day string, minute int, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DayLayout, day, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), minute/60, minute%60, 0, 0, loc), nil
}
