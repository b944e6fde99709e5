package availability

import "github.com/sesroster/availability/pkg/core/model"

// Predicate decides whether a record counts toward an aggregate
type Predicate func(member model.Member, record model.AvailabilityRecord) bool

// StormAvailable accepts records marked available for storm callouts
func StormAvailable(_ model.Member, record model.AvailabilityRecord) bool {
	return record.Storm == model.StormAvailable
}

// RescueImmediate accepts records marked immediately available for rescue
func RescueImmediate(_ model.Member, record model.AvailabilityRecord) bool {
	return record.Rescue == model.RescueImmediate
}

// RescueAvailable accepts immediate and support rescue availability
func RescueAvailable(_ model.Member, record model.AvailabilityRecord) bool {
	return record.Rescue == model.RescueImmediate || record.Rescue == model.RescueSupport
}

// WithQualification narrows p to members holding qualification q
func WithQualification(q string, p Predicate) Predicate {
	return func(member model.Member, record model.AvailabilityRecord) bool {
		return member.HasQualification(q) && p(member, record)
	}
}

// InTeam narrows p to members of team
func InTeam(team string, p Predicate) Predicate {
	return func(member model.Member, record model.AvailabilityRecord) bool {
		return member.Team == team && p(member, record)
	}
}

// All accepts a record only if every predicate does
func All(predicates ...Predicate) Predicate {
	return func(member model.Member, record model.AvailabilityRecord) bool {
		for _, p := range predicates {
			if !p(member, record) {
				return false
			}
		}
		return true
	}
}
