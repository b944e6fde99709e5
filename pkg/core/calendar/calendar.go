package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
)

// Default shift calendar values
const (
	DefaultWeekStartDay        = time.Monday
	DefaultWeekStartHour       = 18
	DefaultDayShiftStartHour   = 6
	DefaultNightShiftStartHour = 18
)

// rruleWeekdays maps time.Weekday (Sunday = 0) to rrule weekdays
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Config describes the organisation's shift calendar
type Config struct {
	// Location is the IANA zone every boundary is computed in
	Location *time.Location

	// WeekStartDay and WeekStartHour mark the start of a shift week
	WeekStartDay  time.Weekday
	WeekStartHour int

	// DayShiftStartHour and NightShiftStartHour split each day into two shifts
	DayShiftStartHour   int
	NightShiftStartHour int
}

// DefaultConfig returns the Monday 18:00 shift week with 06:00/18:00 shifts in loc
func DefaultConfig(loc *time.Location) Config {
	return Config{
		Location:            loc,
		WeekStartDay:        DefaultWeekStartDay,
		WeekStartHour:       DefaultWeekStartHour,
		DayShiftStartHour:   DefaultDayShiftStartHour,
		NightShiftStartHour: DefaultNightShiftStartHour,
	}
}

// Calendar computes shift weeks, days and shifts for one fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Calendar struct {
	cfg Config
	now func() time.Time
}

// New validates cfg and returns a Calendar
func New(cfg Config) (*Calendar, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("calendar location is required")
	}
	if cfg.WeekStartDay < time.Sunday || cfg.WeekStartDay > time.Saturday {
		return nil, fmt.Errorf("invalid week start day %d", cfg.WeekStartDay)
	}
	if cfg.WeekStartHour < 0 || cfg.WeekStartHour > 23 {
		return nil, fmt.Errorf("week start hour must be between 0 and 23, got %d", cfg.WeekStartHour)
	}
	if cfg.DayShiftStartHour < 0 || cfg.NightShiftStartHour > 23 || cfg.DayShiftStartHour >= cfg.NightShiftStartHour {
		return nil, fmt.Errorf("day shift must start before night shift within a day, got %02d:00 and %02d:00",
			cfg.DayShiftStartHour, cfg.NightShiftStartHour)
	}

	return &Calendar{cfg: cfg, now: time.Now}, nil
}

// WithClock returns a copy of the calendar that reads the current time from now
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	clone := *c
	clone.now = now
	return &clone
}

// Config returns the calendar configuration
func (c *Calendar) Config() Config {
	return c.cfg
}

// Location returns the calendar's time zone
func (c *Calendar) Location() *time.Location {
	return c.cfg.Location
}

// Now returns the current instant in the calendar's zone
func (c *Calendar) Now() time.Time {
	return c.now().In(c.cfg.Location)
}

// CurrentShift returns NIGHT when the local hour is before the day shift
// start or at/after the night shift start, otherwise DAY
func (c *Calendar) CurrentShift(t time.Time) model.Shift {
	hour := t.In(c.cfg.Location).Hour()
	if hour < c.cfg.DayShiftStartHour || hour >= c.cfg.NightShiftStartHour {
		return model.ShiftNight
	}
	return model.ShiftDay
}

// ShiftWeek returns [weekStart, nextWeekStart) where weekStart is the latest
// configured weekday/hour at or before t. Both ends come from the same
// recurrence, so every instant maps to exactly one week and consecutive weeks
// abut even when a start hour is skipped or repeated by daylight saving.
//
// The rule is weekday + hour with no special case: on the start weekday
// before the start hour, t belongs to the previous week.
func (c *Calendar) ShiftWeek(t time.Time) interval.Interval {
	local := t.In(c.cfg.Location)
	today := localDate(local)

	// Two weeks either side always holds a start at or before t and one after it
	from, to := today.AddDate(0, 0, -14), today.AddDate(0, 0, 14)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   from,
		Byweekday: []rrule.Weekday{rruleWeekdays[c.cfg.WeekStartDay]},
	})
	if err != nil {
		// Options are validated in New
		panic(fmt.Sprintf("week recurrence: %v", err))
	}

	var weekStart, nextWeekStart time.Time
	for _, date := range rule.Between(from, to, true) {
		boundary := c.wallClock(date, c.cfg.WeekStartHour)
		if !boundary.After(local) {
			weekStart = boundary
			continue
		}
		nextWeekStart = boundary
		break
	}
	return interval.MustNew(weekStart, nextWeekStart)
}

// CurrentShiftWeek returns the shift week containing the calendar's current time
func (c *Calendar) CurrentShiftWeek() interval.Interval {
	return c.ShiftWeek(c.Now())
}

// StartOfDay returns the first instant of the local day containing t
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	return c.wallClock(localDate(t.In(c.cfg.Location)), 0)
}

// DayIntervals splits iv into local calendar days. The result is contiguous,
// covers iv rounded out to day boundaries, and has one entry per calendar day
// iv touches. An empty interval touches no days.
func (c *Calendar) DayIntervals(iv interval.Interval) []interval.Interval {
	if iv.IsEmpty() {
		return nil
	}

	var days []interval.Interval
	date := localDate(iv.Start().In(c.cfg.Location))
	cursor := c.wallClock(date, 0)
	for cursor.Before(iv.End()) {
		date = date.AddDate(0, 0, 1)
		next := c.wallClock(date, 0)
		days = append(days, interval.MustNew(cursor, next))
		cursor = next
	}
	return days
}

// localDate is the calendar date of an already zoned t, held as midnight UTC
// so recurrences over dates never cross a daylight saving transition
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wallClock returns the first instant on date whose local clock reads hour:00
// or later. An hour skipped by daylight saving maps to the instant the clocks
// jump; a repeated hour maps to whichever occurrence time.Date picks.
func (c *Calendar) wallClock(date time.Time, hour int) time.Time {
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, c.cfg.Location)

	want := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
	got := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	switch {
	case got.After(want):
		// Normalised forward past the gap: the zone began at the jump
		if start, _ := t.ZoneBounds(); !start.IsZero() {
			return start
		}
	case got.Before(want):
		// Normalised back before the gap: the zone ends at the jump
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end
		}
	}
	return t
}
