package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/db"
)

// loadMemberAvailability fetches members and the availability overlapping
// window, and parses them into the calendar's zone.
// Members without availability are kept with no records. Records for unknown
// members are skipped with a warning. A malformed record fails the whole load.
func loadMemberAvailability(
	ctx context.Context,
	store db.AvailabilityStore,
	cal *calendar.Calendar,
	logger *zap.Logger,
	window interval.Interval,
) ([]model.MemberAvailability, error) {
	logger.Debug("Fetching members")
	members, err := store.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	logger.Debug("Fetching availability", zap.Stringer("window", window))
	records, err := store.GetAvailability(ctx, window.Start(), window.End())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	logger.Debug("Fetched availability",
		zap.Int("members", len(members)),
		zap.Int("records", len(records)))

	// Group raw records by member number
	byMember := make(map[int][]model.RawAvailability)
	for _, r := range records {
		byMember[r.MemberNumber] = append(byMember[r.MemberNumber], toRaw(r))
	}

	// Parse per member, keeping members with no records
	result := make([]model.MemberAvailability, 0, len(members))
	for _, m := range members {
		member := toMember(m)
		ma, err := model.ParseMemberAvailability(member, byMember[m.Number], cal.Location())
		if err != nil {
			return nil, fmt.Errorf("failed to parse availability: %w", err)
		}
		result = append(result, ma)
		delete(byMember, m.Number)
	}

	for number, orphans := range byMember {
		logger.Warn("Skipping availability for unknown member",
			zap.Int("member_number", number),
			zap.Int("records", len(orphans)))
	}

	return result, nil
}

func toMember(m db.Member) model.Member {
	return model.Member{
		Number:         m.Number,
		FullName:       m.FullName,
		Unit:           m.Unit,
		Team:           m.Team,
		Qualifications: m.Qualifications,
	}
}

func toRaw(a db.Availability) model.RawAvailability {
	return model.RawAvailability{
		Start:   a.Start,
		End:     a.End,
		Storm:   a.Storm,
		Rescue:  a.Rescue,
		Vehicle: a.Vehicle,
		Note:    a.Note,
	}
}
