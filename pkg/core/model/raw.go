package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/sesroster/availability/pkg/core/interval"
)

// RawAvailability is an availability record as delivered by the roster server
type RawAvailability struct {
	Start   string `yaml:"start" json:"start"`
	End     string `yaml:"end" json:"end"`
	Storm   string `yaml:"storm,omitempty" json:"storm,omitempty"`
	Rescue  string `yaml:"rescue,omitempty" json:"rescue,omitempty"`
	Vehicle string `yaml:"vehicle,omitempty" json:"vehicle,omitempty"`
	Note    string `yaml:"note,omitempty" json:"note,omitempty"`
}

// ParseRecord converts a raw record into a zoned AvailabilityRecord.
// Fails with interval.ErrInvalidInterval or ErrUnsupportedShift.
func ParseRecord(raw RawAvailability, loc *time.Location) (AvailabilityRecord, error) {
	iv, err := interval.Parse(raw.Start, raw.End, loc)
	if err != nil {
		return AvailabilityRecord{}, err
	}

	storm, err := ParseStormStatus(raw.Storm)
	if err != nil {
		return AvailabilityRecord{}, err
	}

	rescue, err := ParseRescueStatus(raw.Rescue)
	if err != nil {
		return AvailabilityRecord{}, err
	}

	return AvailabilityRecord{
		Interval: iv,
		Storm:    storm,
		Rescue:   rescue,
		Vehicle:  raw.Vehicle,
		Note:     raw.Note,
	}, nil
}

// ParseMemberAvailability parses every raw record of a member and sorts the
// result by start. The first bad record fails the whole member.
func ParseMemberAvailability(member Member, raws []RawAvailability, loc *time.Location) (MemberAvailability, error) {
	records := make([]AvailabilityRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := ParseRecord(raw, loc)
		if err != nil {
			return MemberAvailability{}, fmt.Errorf("member %d record %d: %w", member.Number, i, err)
		}
		records = append(records, record)
	}

	slices.SortStableFunc(records, func(a, b AvailabilityRecord) int {
		return a.Interval.Start().Compare(b.Interval.Start())
	})

	return MemberAvailability{Member: member, Records: records}, nil
}
