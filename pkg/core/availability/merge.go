package availability

import (
	"github.com/sesroster/availability/pkg/core/model"
)

// FieldSet selects which record fields must match for two abutting records
// to merge
type FieldSet uint8

const (
	FieldStorm FieldSet = 1 << iota
	FieldRescue
	FieldVehicle
	FieldNote

	// AllFields compares every classification field
	AllFields = FieldStorm | FieldRescue | FieldVehicle | FieldNote
)

// Has reports whether every field in f is selected
func (fs FieldSet) Has(f FieldSet) bool {
	return fs&f == f
}

// sameFields compares the selected fields. Unset statuses and empty strings
// compare equal to each other and to nothing else.
func sameFields(a, b model.AvailabilityRecord, fields FieldSet) bool {
	if fields.Has(FieldStorm) && a.Storm != b.Storm {
		return false
	}
	if fields.Has(FieldRescue) && a.Rescue != b.Rescue {
		return false
	}
	if fields.Has(FieldVehicle) && a.Vehicle != b.Vehicle {
		return false
	}
	if fields.Has(FieldNote) && a.Note != b.Note {
		return false
	}
	return true
}

// MergeAbutting coalesces consecutive records that touch in time and agree on
// the selected fields into one display block. Records must be sorted by start
// and non-overlapping. Fields outside the selection keep the value of the first
// record of each block.
//
// When nothing merges the input slice itself is returned, so neither the input
// nor the result may be mutated afterwards.
func MergeAbutting(records []model.AvailabilityRecord, fields FieldSet) []model.AvailabilityRecord {
	if len(records) < 2 {
		return records
	}

	merged := make([]model.AvailabilityRecord, 0, len(records))
	current := records[0]
	for _, next := range records[1:] {
		if current.Interval.Abuts(next.Interval) && sameFields(current, next, fields) {
			if extended, err := current.Interval.WithEnd(next.Interval.End()); err == nil {
				current.Interval = extended
				continue
			}
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	if len(merged) == len(records) {
		return records
	}
	return merged
}

// MergeMembers applies MergeAbutting to every member's records
func MergeMembers(members []model.MemberAvailability, fields FieldSet) []model.MemberAvailability {
	result := make([]model.MemberAvailability, len(members))
	for i, m := range members {
		result[i] = model.MemberAvailability{
			Member:  m.Member,
			Records: MergeAbutting(m.Records, fields),
		}
	}
	return result
}
