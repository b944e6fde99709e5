package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
)

// ShiftInterval is one day or night shift
type ShiftInterval struct {
	Shift    model.Shift
	Interval interval.Interval
}

// shiftBoundary is the start of a shift, tagged by the hour that produced it
type shiftBoundary struct {
	at    time.Time
	shift model.Shift
}

// ShiftIntervals returns the day and night shifts overlapping iv, clipped to iv.
// A shift whose start hour is skipped by daylight saving starts when the clocks
// jump and keeps its kind.
func (c *Calendar) ShiftIntervals(iv interval.Interval) []ShiftInterval {
	if iv.IsEmpty() {
		return nil
	}

	// The boundary at or before iv's start is at most a day back
	from := localDate(iv.Start().In(c.cfg.Location)).AddDate(0, 0, -1)
	to := localDate(iv.End().In(c.cfg.Location)).AddDate(0, 0, 1)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: from,
	})
	if err != nil {
		panic(fmt.Sprintf("shift recurrence: %v", err))
	}

	var boundaries []shiftBoundary
	for _, date := range rule.Between(from, to, true) {
		boundaries = append(boundaries,
			shiftBoundary{at: c.wallClock(date, c.cfg.DayShiftStartHour), shift: model.ShiftDay},
			shiftBoundary{at: c.wallClock(date, c.cfg.NightShiftStartHour), shift: model.ShiftNight},
		)
	}

	var shifts []ShiftInterval
	for i := 0; i+1 < len(boundaries); i++ {
		whole, err := interval.New(boundaries[i].at, boundaries[i+1].at)
		if err != nil {
			continue
		}
		visible, ok := interval.Clip(whole, iv)
		if !ok {
			continue
		}
		shifts = append(shifts, ShiftInterval{
			Shift:    boundaries[i].shift,
			Interval: visible,
		})
	}
	return shifts
}

// Buckets splits every calendar day touched by iv into perDay equal blocks of
// local clock time, e.g. perDay=4 gives 00-06, 06-12, 12-18 and 18-24.
// Blocks shortened by daylight saving keep their clock edges; a block the
// clocks skip entirely is dropped.
func (c *Calendar) Buckets(iv interval.Interval, perDay int) ([]interval.Interval, error) {
	if perDay < 1 || 24%perDay != 0 {
		return nil, fmt.Errorf("buckets per day must divide 24, got %d", perDay)
	}
	hours := 24 / perDay

	var buckets []interval.Interval
	for _, day := range c.DayIntervals(iv) {
		date := localDate(day.Start())
		for k := 0; k < perDay; k++ {
			start := c.wallClock(date, k*hours)
			end := day.End()
			if k+1 < perDay {
				end = c.wallClock(date, (k+1)*hours)
			}
			bucket, err := interval.New(start, end)
			if err != nil {
				return nil, err
			}
			if bucket.IsEmpty() {
				continue
			}
			buckets = append(buckets, bucket)
		}
	}
	return buckets, nil
}
