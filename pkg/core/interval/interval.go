package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval ends before it starts or
// when a timestamp cannot be parsed
var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a half-open range [start, end) of absolute timestamps.
// The zero value is an empty interval at the zero time.
type Interval struct {
	start time.Time
	end   time.Time
}

// New creates an interval, failing with ErrInvalidInterval if end is before start
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidInterval, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Interval{start: start, end: end}, nil
}

// MustNew is like New but panics on an invalid interval. Intended for literals.
func MustNew(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Parse builds an interval from two ISO-8601 timestamps and converts both
// ends into loc
func Parse(start, end string, loc *time.Location) (Interval, error) {
	s, err := time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: failed to parse start %q: %v", ErrInvalidInterval, start, err)
	}
	e, err := time.Parse(time.RFC3339Nano, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: failed to parse end %q: %v", ErrInvalidInterval, end, err)
	}
	if loc != nil {
		s = s.In(loc)
		e = e.In(loc)
	}
	return New(s, e)
}

func (iv Interval) Start() time.Time { return iv.start }
func (iv Interval) End() time.Time   { return iv.end }

// Duration returns end - start
func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// IsEmpty reports whether the interval has zero width
func (iv Interval) IsEmpty() bool {
	return !iv.start.Before(iv.end)
}

// Equal compares both ends as instants, ignoring location
func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end)
}

// Abuts reports whether next starts exactly where iv ends
func (iv Interval) Abuts(next Interval) bool {
	return iv.end.Equal(next.start)
}

// Contains reports whether t lies in [start, end)
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.start) && t.Before(iv.end)
}

// Overlaps reports whether the two intervals share at least one instant
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// WithEnd returns a copy of iv ending at end
func (iv Interval) WithEnd(end time.Time) (Interval, error) {
	return New(iv.start, end)
}

// In returns the same interval expressed in loc
func (iv Interval) In(loc *time.Location) Interval {
	return Interval{start: iv.start.In(loc), end: iv.end.In(loc)}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
