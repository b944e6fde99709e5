package interval

import "time"

// Position maps t to a fraction of bounds for time-proportional layouts.
// Returns 0 at or before the start, 1 at or after the end and the elapsed
// millisecond ratio in between. No rounding is applied.
func Position(bounds Interval, t time.Time) float64 {
	if !t.After(bounds.start) {
		return 0
	}
	if !t.Before(bounds.end) {
		return 1
	}

	elapsed := t.Sub(bounds.start).Milliseconds()
	total := bounds.Duration().Milliseconds()
	if total == 0 {
		// Sub-millisecond bounds
		return 1
	}
	return float64(elapsed) / float64(total)
}

// Clip returns the part of iv visible inside window.
// The boolean is false when nothing is visible; such intervals must be skipped
// rather than drawn with zero or negative width.
func Clip(iv, window Interval) (Interval, bool) {
	start := iv.start
	if window.start.After(start) {
		start = window.start
	}
	end := iv.end
	if window.end.Before(end) {
		end = window.end
	}

	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{start: start, end: end}, true
}

// Span clips iv to bounds and returns the positions of both visible edges
func Span(bounds, iv Interval) (from, to float64, ok bool) {
	visible, ok := Clip(iv, bounds)
	if !ok {
		return 0, 0, false
	}
	return Position(bounds, visible.start), Position(bounds, visible.end), true
}
