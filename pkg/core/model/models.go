package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sesroster/availability/pkg/core/interval"
)

// ErrUnsupportedShift is returned when a shift or status value falls outside
// its closed set. It signals drift between client and server data models.
var ErrUnsupportedShift = errors.New("unsupported shift or status value")

// StormStatus is a member's storm/support availability
type StormStatus int

const (
	// StormUnset means nothing was recorded, which is not the same as unavailable
	StormUnset StormStatus = iota
	StormAvailable
	StormUnavailable
)

// ParseStormStatus converts a wire value. The empty string maps to StormUnset.
func ParseStormStatus(s string) (StormStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return StormUnset, nil
	case "AVAILABLE":
		return StormAvailable, nil
	case "UNAVAILABLE":
		return StormUnavailable, nil
	}
	return StormUnset, fmt.Errorf("%w: storm status %q", ErrUnsupportedShift, s)
}

func (s StormStatus) String() string {
	switch s {
	case StormUnset:
		return ""
	case StormAvailable:
		return "AVAILABLE"
	case StormUnavailable:
		return "UNAVAILABLE"
	}
	return fmt.Sprintf("StormStatus(%d)", int(s))
}

// RescueStatus is a member's rescue availability, with a support tier between
// immediate and unavailable
type RescueStatus int

const (
	RescueUnset RescueStatus = iota
	RescueImmediate
	RescueSupport
	RescueUnavailable
)

// ParseRescueStatus converts a wire value. The empty string maps to RescueUnset.
func ParseRescueStatus(s string) (RescueStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return RescueUnset, nil
	case "IMMEDIATE":
		return RescueImmediate, nil
	case "SUPPORT":
		return RescueSupport, nil
	case "UNAVAILABLE":
		return RescueUnavailable, nil
	}
	return RescueUnset, fmt.Errorf("%w: rescue status %q", ErrUnsupportedShift, s)
}

func (r RescueStatus) String() string {
	switch r {
	case RescueUnset:
		return ""
	case RescueImmediate:
		return "IMMEDIATE"
	case RescueSupport:
		return "SUPPORT"
	case RescueUnavailable:
		return "UNAVAILABLE"
	}
	return fmt.Sprintf("RescueStatus(%d)", int(r))
}

// Shift is the half of the day a moment belongs to
type Shift int

const (
	ShiftDay Shift = iota
	ShiftNight
)

// ParseShift converts a wire value ("DAY" or "NIGHT")
func ParseShift(s string) (Shift, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAY":
		return ShiftDay, nil
	case "NIGHT":
		return ShiftNight, nil
	}
	return ShiftDay, fmt.Errorf("%w: shift %q", ErrUnsupportedShift, s)
}

func (s Shift) String() string {
	switch s {
	case ShiftDay:
		return "DAY"
	case ShiftNight:
		return "NIGHT"
	}
	return fmt.Sprintf("Shift(%d)", int(s))
}

// Member is the identity and attributes of a unit member that inclusion
// predicates may look at
type Member struct {
	Number         int
	FullName       string
	Unit           string
	Team           string
	Qualifications []string
}

// HasQualification reports whether the member holds the named qualification
func (m Member) HasQualification(q string) bool {
	return slices.Contains(m.Qualifications, q)
}

// AvailabilityRecord is one availability period of a member
type AvailabilityRecord struct {
	Interval interval.Interval
	Storm    StormStatus
	Rescue   RescueStatus
	Vehicle  string
	Note     string
}

// MemberAvailability pairs a member with their records, sorted by start
type MemberAvailability struct {
	Member  Member
	Records []AvailabilityRecord
}
