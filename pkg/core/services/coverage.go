package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/sesroster/availability/internal/config"
	"github.com/sesroster/availability/pkg/core/availability"
	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
)

// checkCoverageTarget returns the buckets falling below target.Minimum.
// A target with an rrule only applies to buckets starting on a day the rule
// has an occurrence on.
func checkCoverageTarget(
	cal *calendar.Calendar,
	target config.CoverageTarget,
	buckets []interval.Interval,
	members []model.MemberAvailability,
	logger *zap.Logger,
) ([]Shortfall, error) {
	predicate, err := MeasurePredicate(target.Measure, target.Qualification)
	if err != nil {
		return nil, fmt.Errorf("coverage target %q: %w", target.Name, err)
	}

	applicable := buckets
	if target.RRule != "" {
		applicable, err = bucketsOnRuleDays(cal, target.RRule, buckets)
		if err != nil {
			return nil, fmt.Errorf("coverage target %q: %w", target.Name, err)
		}
	}

	logger.Debug("Checking coverage target",
		zap.String("target", target.Name),
		zap.String("measure", target.Measure),
		zap.Int("minimum", target.Minimum),
		zap.Int("buckets", len(applicable)))

	// Compare each applicable bucket with the target
	minimums, err := availability.MinimumAvailabilities(applicable, members, predicate)
	if err != nil {
		return nil, fmt.Errorf("coverage target %q: %w", target.Name, err)
	}

	var shortfalls []Shortfall
	for i, bucket := range applicable {
		if minimums[i] < target.Minimum {
			shortfalls = append(shortfalls, Shortfall{
				Target:  target,
				Bucket:  bucket,
				Minimum: minimums[i],
			})
		}
	}
	return shortfalls, nil
}

// bucketsOnRuleDays keeps the buckets whose local start day has an occurrence
// of the rule. The rule is anchored at midnight of the first bucket's date.
func bucketsOnRuleDays(cal *calendar.Calendar, ruleText string, buckets []interval.Interval) ([]interval.Interval, error) {
	if len(buckets) == 0 {
		return nil, nil
	}

	parsed, err := rrule.StrToRRule(ruleText)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", ruleText, err)
	}

	opts := parsed.OrigOptions
	opts.Dtstart = ruleDate(cal, buckets[0].Start())
	rule, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", ruleText, err)
	}

	// Cache per day since several buckets share one
	onDay := make(map[int64]bool)
	var result []interval.Interval
	for _, bucket := range buckets {
		dayStart := ruleDate(cal, bucket.Start())
		key := dayStart.Unix()
		applies, seen := onDay[key]
		if !seen {
			dayEnd := dayStart.AddDate(0, 0, 1)
			applies = len(rule.Between(dayStart, dayEnd.Add(-time.Second), true)) > 0
			onDay[key] = applies
		}
		if applies {
			result = append(result, bucket)
		}
	}
	return result, nil
}

// ruleDate is the local calendar date of t held as midnight UTC, so the rule
// always sees whole days whatever daylight saving does to the clock
func ruleDate(cal *calendar.Calendar, t time.Time) time.Time {
	local := t.In(cal.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
