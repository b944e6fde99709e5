package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sesroster/availability/internal/config"
	"github.com/sesroster/availability/pkg/core/availability"
	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/db"
)

// DutyShift is one day or night shift of the duty officer schedule
type DutyShift struct {
	Shift calendar.ShiftInterval

	// MinimumRescue is the lowest rescue headcount (immediate or support) during the shift
	MinimumRescue int

	// Candidates are members whose rescue availability covers the whole shift
	// and who hold the duty officer qualification, when one is configured
	Candidates []model.Member
}

// DutyScheduleResult is the duty officer schedule of one shift week
type DutyScheduleResult struct {
	Week   interval.Interval
	Shifts []DutyShift
}

// BuildDutySchedule lists, for each shift of the week containing at, the
// members able to cover it as duty officer and the minimum rescue headcount
func BuildDutySchedule(
	ctx context.Context,
	store db.AvailabilityStore,
	cal *calendar.Calendar,
	cfg *config.Config,
	logger *zap.Logger,
	at time.Time,
) (*DutyScheduleResult, error) {
	week := cal.ShiftWeek(at)
	shifts := cal.ShiftIntervals(week)

	logger.Debug("Building duty schedule",
		zap.Stringer("week", week),
		zap.Int("shifts", len(shifts)),
		zap.String("qualification", cfg.DutyOfficerQualification))

	// Step 1: Fetch members and their availability for the week
	members, err := loadMemberAvailability(ctx, store, cal, logger, week)
	if err != nil {
		return nil, err
	}

	// Step 2: Minimum rescue headcount per shift
	buckets := make([]interval.Interval, len(shifts))
	for i, s := range shifts {
		buckets[i] = s.Interval
	}

	minimums, err := availability.MinimumAvailabilities(buckets, members, availability.RescueAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate rescue availability: %w", err)
	}

	// Step 3: Qualified members covering each whole shift
	result := &DutyScheduleResult{Week: week}
	for i, s := range shifts {
		duty := DutyShift{Shift: s, MinimumRescue: minimums[i]}
		for _, m := range members {
			// Filter to duty officers when a qualification is configured
			if cfg.DutyOfficerQualification != "" && !m.Member.HasQualification(cfg.DutyOfficerQualification) {
				continue
			}
			if coversInterval(m, s.Interval, availability.RescueAvailable) {
				duty.Candidates = append(duty.Candidates, m.Member)
			}
		}
		result.Shifts = append(result.Shifts, duty)
	}

	return result, nil
}

// coversInterval reports whether the member's records accepted by included
// cover iv without a gap. Records must be sorted by start.
func coversInterval(m model.MemberAvailability, iv interval.Interval, included availability.Predicate) bool {
	covered := iv.Start()
	for _, record := range m.Records {
		if !included(m.Member, record) {
			continue
		}
		if record.Interval.Start().After(covered) {
			return false
		}
		if record.Interval.End().After(covered) {
			covered = record.Interval.End()
		}
		if !covered.Before(iv.End()) {
			return true
		}
	}
	return false
}
