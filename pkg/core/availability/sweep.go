package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
)

// qualifying is a flattened availability interval that passed the predicate
type qualifying struct {
	start time.Time
	end   time.Time
}

func (q qualifying) contains(t time.Time) bool {
	return !t.Before(q.start) && t.Before(q.end)
}

// MinimumAvailabilities returns, for each bucket, the smallest number of
// qualifying intervals active at any instant inside the bucket.
//
// Counts only change at interval boundaries, so each bucket is evaluated at
// its own start and at every qualifying start or end that falls inside it.
// A zero-width bucket fails with interval.ErrInvalidInterval.
func MinimumAvailabilities(buckets []interval.Interval, members []model.MemberAvailability, included Predicate) ([]int, error) {
	for i, bucket := range buckets {
		if bucket.IsEmpty() {
			return nil, fmt.Errorf("%w: bucket %d %s has zero width", interval.ErrInvalidInterval, i, bucket)
		}
	}

	spans := flattenQualifying(members, included)

	results := make([]int, len(buckets))
	for i, bucket := range buckets {
		results[i] = bucketMinimum(bucket, spans)
	}
	return results, nil
}

// flattenQualifying collects every non-empty record accepted by included,
// sorted by start
func flattenQualifying(members []model.MemberAvailability, included Predicate) []qualifying {
	var spans []qualifying
	for _, m := range members {
		for _, record := range m.Records {
			if record.Interval.IsEmpty() || !included(m.Member, record) {
				continue
			}
			spans = append(spans, qualifying{
				start: record.Interval.Start(),
				end:   record.Interval.End(),
			})
		}
	}

	slices.SortFunc(spans, func(a, b qualifying) int {
		return a.start.Compare(b.start)
	})
	return spans
}

func bucketMinimum(bucket interval.Interval, spans []qualifying) int {
	// Only spans overlapping the bucket can be active inside it
	var touching []qualifying
	for _, span := range spans {
		if !span.start.Before(bucket.End()) {
			break
		}
		if span.end.After(bucket.Start()) {
			touching = append(touching, span)
		}
	}
	if len(touching) == 0 {
		return 0
	}

	candidates := []time.Time{bucket.Start()}
	for _, span := range touching {
		if bucket.Contains(span.start) && span.start.After(bucket.Start()) {
			candidates = append(candidates, span.start)
		}
		if bucket.Contains(span.end) {
			candidates = append(candidates, span.end)
		}
	}

	minimum := len(touching)
	for _, instant := range candidates {
		count := 0
		for _, span := range touching {
			if span.contains(instant) {
				count++
			}
		}
		if count < minimum {
			minimum = count
		}
	}
	return minimum
}
