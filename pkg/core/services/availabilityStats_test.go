package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sesroster/availability/internal/config"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/db"
)

func statsStore() *mockAvailabilityStore {
	return &mockAvailabilityStore{
		members: []db.Member{
			{Number: 1, FullName: "Alex Citizen", Qualifications: []string{"FLOOD_RESCUE_L3"}},
			{Number: 2, FullName: "Sam Volunteer"},
			{Number: 3, FullName: "Jo Helper"},
		},
		availability: []db.Availability{
			// Whole of Tuesday 9 January
			{MemberNumber: 1, Start: "2024-01-09T00:00:00+11:00", End: "2024-01-10T00:00:00+11:00", Storm: "AVAILABLE", Rescue: "IMMEDIATE"},
			{MemberNumber: 2, Start: "2024-01-09T00:00:00+11:00", End: "2024-01-10T00:00:00+11:00", Storm: "AVAILABLE", Rescue: "SUPPORT"},
			// Tuesday office hours only
			{MemberNumber: 3, Start: "2024-01-09T09:00:00+11:00", End: "2024-01-09T17:00:00+11:00", Storm: "AVAILABLE"},
		},
	}
}

func findBucket(t *testing.T, buckets []BucketStats, start time.Time) BucketStats {
	t.Helper()
	for _, b := range buckets {
		if b.Bucket.Start().Equal(start) {
			return b
		}
	}
	t.Fatalf("no bucket starting at %s", start)
	return BucketStats{}
}

func TestBuildAvailabilityStats_Buckets(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := statsStore()
	cfg := &config.Config{Timezone: "Australia/Sydney", BucketsPerDay: 4}

	result, err := BuildAvailabilityStats(context.Background(), store, cal, cfg, zap.NewNop(), wednesday(loc))
	require.NoError(t, err)

	// Eight calendar days of four blocks
	require.Len(t, result.Buckets, 32)
	assert.True(t, store.requestedFrom.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, loc)))
	assert.True(t, store.requestedTo.Equal(time.Date(2024, 1, 16, 0, 0, 0, 0, loc)))

	night := findBucket(t, result.Buckets, time.Date(2024, 1, 9, 0, 0, 0, 0, loc))
	assert.Equal(t, 2, night.Storm)
	assert.Equal(t, 1, night.RescueImmediate)
	assert.Equal(t, 2, night.RescueAvailable)

	// Member 3 arrives at 09:00, so the morning minimum stays at 2
	morning := findBucket(t, result.Buckets, time.Date(2024, 1, 9, 6, 0, 0, 0, loc))
	assert.Equal(t, 2, morning.Storm)

	// Three members from 12:00 but member 3 leaves at 17:00
	afternoon := findBucket(t, result.Buckets, time.Date(2024, 1, 9, 12, 0, 0, 0, loc))
	assert.Equal(t, 2, afternoon.Storm)

	wednesdayNight := findBucket(t, result.Buckets, time.Date(2024, 1, 10, 0, 0, 0, 0, loc))
	assert.Equal(t, 0, wednesdayNight.Storm)
	assert.Equal(t, 0, wednesdayNight.RescueAvailable)

	assert.Empty(t, result.Shortfalls)
}

func TestBuildAvailabilityStats_Shortfalls(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := statsStore()
	cfg := &config.Config{
		Timezone:      "Australia/Sydney",
		BucketsPerDay: 2,
		CoverageTargets: []config.CoverageTarget{
			{
				Name:          "Flood rescue on Tuesdays",
				Measure:       config.MeasureRescueImmediate,
				Minimum:       1,
				Qualification: "FLOOD_RESCUE_L3",
				RRule:         "FREQ=WEEKLY;BYDAY=TU",
			},
			{
				Name:    "Three storm members on Tuesdays",
				Measure: config.MeasureStorm,
				Minimum: 3,
				RRule:   "FREQ=WEEKLY;BYDAY=TU",
			},
		},
	}

	result, err := BuildAvailabilityStats(context.Background(), store, cal, cfg, zap.NewNop(), wednesday(loc))
	require.NoError(t, err)

	// The flood rescue target is met all Tuesday; the storm target is missed in both halves
	require.Len(t, result.Shortfalls, 2)
	for _, s := range result.Shortfalls {
		assert.Equal(t, "Three storm members on Tuesdays", s.Target.Name)
		assert.Equal(t, 2, s.Minimum)
		assert.Equal(t, 9, s.Bucket.Start().Day())
	}
}

func TestBuildAvailabilityStats_TargetWithoutRRuleAppliesEverywhere(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := statsStore()
	cfg := &config.Config{
		Timezone:      "Australia/Sydney",
		BucketsPerDay: 1,
		CoverageTargets: []config.CoverageTarget{
			{Name: "Any storm member", Measure: config.MeasureStorm, Minimum: 1},
		},
	}

	result, err := BuildAvailabilityStats(context.Background(), store, cal, cfg, zap.NewNop(), wednesday(loc))
	require.NoError(t, err)

	// Every day except Tuesday falls short
	assert.Len(t, result.Buckets, 8)
	assert.Len(t, result.Shortfalls, 7)
}

func TestBuildAvailabilityStats_MalformedData(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := &mockAvailabilityStore{
		members:      []db.Member{{Number: 1, FullName: "Alex Citizen"}},
		availability: []db.Availability{{MemberNumber: 1, Start: "bad", End: "2024-01-09T00:00:00Z"}},
	}
	cfg := &config.Config{Timezone: "Australia/Sydney"}

	_, err := BuildAvailabilityStats(context.Background(), store, cal, cfg, zap.NewNop(), wednesday(loc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, interval.ErrInvalidInterval))
}

func TestMeasurePredicate(t *testing.T) {
	member := model.Member{Qualifications: []string{"FLOOD_RESCUE_L3"}}
	support := model.AvailabilityRecord{Rescue: model.RescueSupport}

	p, err := MeasurePredicate(config.MeasureRescueAvailable, "")
	require.NoError(t, err)
	assert.True(t, p(member, support))

	p, err = MeasurePredicate(config.MeasureRescueImmediate, "")
	require.NoError(t, err)
	assert.False(t, p(member, support))

	p, err = MeasurePredicate(config.MeasureRescueAvailable, "VERTICAL_RESCUE")
	require.NoError(t, err)
	assert.False(t, p(member, support))

	_, err = MeasurePredicate("vertical", "")
	assert.Error(t, err)
}

func TestBucketsOnRuleDays(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	week := cal.ShiftWeek(wednesday(loc))
	buckets, err := cal.Buckets(week, 4)
	require.NoError(t, err)

	weekend, err := bucketsOnRuleDays(cal, "FREQ=WEEKLY;BYDAY=SA,SU", buckets)
	require.NoError(t, err)

	require.Len(t, weekend, 8)
	for _, b := range weekend {
		wd := b.Start().Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday, b.String())
	}

	_, err = bucketsOnRuleDays(cal, "NOT A RULE", buckets)
	assert.Error(t, err)
}

func TestBucketsOnRuleDays_AcrossDaylightSaving(t *testing.T) {
	cal, loc := sydneyCalendar(t)

	// Clocks go forward on Sunday 2024-10-06
	week := cal.ShiftWeek(time.Date(2024, 10, 2, 12, 0, 0, 0, loc))
	buckets, err := cal.Buckets(week, 2)
	require.NoError(t, err)

	sundays, err := bucketsOnRuleDays(cal, "FREQ=WEEKLY;BYDAY=SU", buckets)
	require.NoError(t, err)

	require.Len(t, sundays, 2)
	for _, b := range sundays {
		assert.Equal(t, time.Sunday, b.Start().Weekday())
		assert.Equal(t, 6, b.Start().Day())
	}
}
