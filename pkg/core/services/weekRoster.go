package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/availability"
	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/db"
)

// Block is a merged availability record clipped to one day column, with the
// fractional positions of its visible edges within that day
type Block struct {
	Day    int
	Record model.AvailabilityRecord
	From   float64
	To     float64
}

// MemberRow is one member's blocks across the week
type MemberRow struct {
	Member model.Member
	Blocks []Block
}

// WeekRosterResult is the per-member availability view of one shift week
type WeekRosterResult struct {
	Week interval.Interval
	Days []interval.Interval
	Rows []MemberRow
}

// BuildWeekRoster loads the shift week containing at, merges each member's
// abutting records on fields and lays the blocks out per day
func BuildWeekRoster(
	ctx context.Context,
	store db.AvailabilityStore,
	cal *calendar.Calendar,
	logger *zap.Logger,
	at time.Time,
	fields availability.FieldSet,
) (*WeekRosterResult, error) {
	week := cal.ShiftWeek(at)
	days := cal.DayIntervals(week)

	logger.Debug("Building week roster",
		zap.Stringer("week", week),
		zap.Int("days", len(days)))

	members, err := loadMemberAvailability(ctx, store, cal, logger, week)
	if err != nil {
		return nil, err
	}

	// Coalesce abutting records into display blocks
	merged := availability.MergeMembers(members, fields)

	// Lay each member's blocks out per day column
	rows := make([]MemberRow, 0, len(merged))
	blockCount := 0
	for _, m := range merged {
		row := MemberRow{Member: m.Member}
		for _, record := range m.Records {
			// Only the part inside the week is shown
			inWeek, ok := interval.Clip(record.Interval, week)
			if !ok {
				continue
			}
			for dayIndex, day := range days {
				from, to, ok := interval.Span(day, inWeek)
				if !ok {
					continue
				}
				row.Blocks = append(row.Blocks, Block{
					Day:    dayIndex,
					Record: record,
					From:   from,
					To:     to,
				})
			}
		}
		blockCount += len(row.Blocks)
		rows = append(rows, row)
	}

	logger.Debug("Week roster built",
		zap.Int("members", len(rows)),
		zap.Int("blocks", blockCount))

	return &WeekRosterResult{
		Week: week,
		Days: days,
		Rows: rows,
	}, nil
}
