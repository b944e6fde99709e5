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
	"github.com/sesroster/availability/pkg/db"
)

// BucketStats holds the minimum concurrent headcounts within one bucket
type BucketStats struct {
	Bucket          interval.Interval
	Storm           int
	RescueImmediate int
	RescueAvailable int
}

// Shortfall is a bucket whose minimum headcount is below a coverage target
type Shortfall struct {
	Target  config.CoverageTarget
	Bucket  interval.Interval
	Minimum int
}

// AvailabilityStatsResult is the aggregate availability of one shift week
type AvailabilityStatsResult struct {
	Week       interval.Interval
	Buckets    []BucketStats
	Shortfalls []Shortfall
}

// MeasurePredicate returns the inclusion predicate for a coverage measure,
// narrowed to a qualification when one is given
func MeasurePredicate(measure, qualification string) (availability.Predicate, error) {
	var p availability.Predicate
	switch measure {
	case config.MeasureStorm:
		p = availability.StormAvailable
	case config.MeasureRescueImmediate:
		p = availability.RescueImmediate
	case config.MeasureRescueAvailable:
		p = availability.RescueAvailable
	default:
		return nil, fmt.Errorf("unknown coverage measure %q", measure)
	}

	if qualification != "" {
		p = availability.WithQualification(qualification, p)
	}
	return p, nil
}

// BuildAvailabilityStats computes minimum storm and rescue headcounts for
// every bucket of the shift week containing at, and checks them against the
// configured coverage targets
func BuildAvailabilityStats(
	ctx context.Context,
	store db.AvailabilityStore,
	cal *calendar.Calendar,
	cfg *config.Config,
	logger *zap.Logger,
	at time.Time,
) (*AvailabilityStatsResult, error) {
	// Step 1: Work out the week and its buckets
	week := cal.ShiftWeek(at)

	buckets, err := cal.Buckets(week, cfg.Buckets())
	if err != nil {
		return nil, fmt.Errorf("failed to build buckets: %w", err)
	}
	if len(buckets) == 0 {
		return &AvailabilityStatsResult{Week: week}, nil
	}

	// Buckets cover whole days, which reaches outside the week itself
	window := interval.MustNew(buckets[0].Start(), buckets[len(buckets)-1].End())

	logger.Debug("Building availability stats",
		zap.Stringer("week", week),
		zap.Stringer("window", window),
		zap.Int("buckets", len(buckets)))

	// Step 2: Fetch everything overlapping the buckets
	members, err := loadMemberAvailability(ctx, store, cal, logger, window)
	if err != nil {
		return nil, err
	}

	// Step 3: Minimum headcount per measure
	storm, err := availability.MinimumAvailabilities(buckets, members, availability.StormAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate storm availability: %w", err)
	}
	immediate, err := availability.MinimumAvailabilities(buckets, members, availability.RescueImmediate)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate rescue availability: %w", err)
	}
	available, err := availability.MinimumAvailabilities(buckets, members, availability.RescueAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate rescue availability: %w", err)
	}

	result := &AvailabilityStatsResult{Week: week}
	for i, bucket := range buckets {
		result.Buckets = append(result.Buckets, BucketStats{
			Bucket:          bucket,
			Storm:           storm[i],
			RescueImmediate: immediate[i],
			RescueAvailable: available[i],
		})
	}

	// Step 4: Check coverage targets
	for _, target := range cfg.CoverageTargets {
		shortfalls, err := checkCoverageTarget(cal, target, buckets, members, logger)
		if err != nil {
			return nil, err
		}
		result.Shortfalls = append(result.Shortfalls, shortfalls...)
	}

	logger.Info("Availability stats built",
		zap.Int("buckets", len(result.Buckets)),
		zap.Int("shortfalls", len(result.Shortfalls)))

	return result, nil
}
