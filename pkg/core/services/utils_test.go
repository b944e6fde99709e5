package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/db"
)

func TestLoadMemberAvailability_GroupsAndParses(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := &mockAvailabilityStore{
		members: []db.Member{
			{Number: 1, FullName: "Alex Citizen", Team: "Alpha", Qualifications: []string{"CHAINSAW"}},
			{Number: 2, FullName: "Sam Volunteer"},
		},
		availability: []db.Availability{
			{MemberNumber: 1, Start: "2024-01-09T06:00:00+11:00", End: "2024-01-09T12:00:00+11:00", Storm: "AVAILABLE"},
			{MemberNumber: 1, Start: "2024-01-09T00:00:00+11:00", End: "2024-01-09T06:00:00+11:00", Rescue: "SUPPORT"},
			{MemberNumber: 99, Start: "2024-01-09T00:00:00+11:00", End: "2024-01-09T06:00:00+11:00"},
		},
	}
	window := cal.ShiftWeek(wednesday(loc))

	members, err := loadMemberAvailability(context.Background(), store, cal, zap.NewNop(), window)
	require.NoError(t, err)

	assert.True(t, store.requestedFrom.Equal(window.Start()))
	assert.True(t, store.requestedTo.Equal(window.End()))

	require.Len(t, members, 2)
	assert.Equal(t, "Alpha", members[0].Member.Team)
	assert.True(t, members[0].Member.HasQualification("CHAINSAW"))
	require.Len(t, members[0].Records, 2)
	assert.Equal(t, model.RescueSupport, members[0].Records[0].Rescue, "records are sorted by start")
	assert.Equal(t, model.StormAvailable, members[0].Records[1].Storm)
	assert.Equal(t, loc, members[0].Records[0].Interval.Start().Location())

	assert.Empty(t, members[1].Records)
}

func TestLoadMemberAvailability_MalformedRecord(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := &mockAvailabilityStore{
		members: []db.Member{{Number: 1, FullName: "Alex Citizen"}},
		availability: []db.Availability{
			{MemberNumber: 1, Start: "2024-01-09T06:00:00+11:00", End: "2024-01-09T05:00:00+11:00"},
		},
	}

	_, err := loadMemberAvailability(context.Background(), store, cal, zap.NewNop(), cal.ShiftWeek(wednesday(loc)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, interval.ErrInvalidInterval))
}

func TestLoadMemberAvailability_UnsupportedStatus(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	store := &mockAvailabilityStore{
		members: []db.Member{{Number: 1, FullName: "Alex Citizen"}},
		availability: []db.Availability{
			{MemberNumber: 1, Start: "2024-01-09T00:00:00+11:00", End: "2024-01-09T05:00:00+11:00", Storm: "PERHAPS"},
		},
	}

	_, err := loadMemberAvailability(context.Background(), store, cal, zap.NewNop(), cal.ShiftWeek(wednesday(loc)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnsupportedShift))
}

func TestLoadMemberAvailability_StoreErrors(t *testing.T) {
	cal, loc := sydneyCalendar(t)
	window := cal.ShiftWeek(wednesday(loc))
	boom := errors.New("connection refused")

	_, err := loadMemberAvailability(context.Background(), &mockAvailabilityStore{membersErr: boom}, cal, zap.NewNop(), window)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failed to fetch members")

	_, err = loadMemberAvailability(context.Background(), &mockAvailabilityStore{availErr: boom}, cal, zap.NewNop(), window)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failed to fetch availability")
}

func TestCoversInterval(t *testing.T) {
	base := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	shift := interval.MustNew(base.Add(6*time.Hour), base.Add(18*time.Hour))
	rescue := func(from, to int, status model.RescueStatus) model.AvailabilityRecord {
		return model.AvailabilityRecord{
			Interval: interval.MustNew(base.Add(time.Duration(from)*time.Hour), base.Add(time.Duration(to)*time.Hour)),
			Rescue:   status,
		}
	}
	included := func(_ model.Member, r model.AvailabilityRecord) bool {
		return r.Rescue == model.RescueImmediate || r.Rescue == model.RescueSupport
	}

	// Immediate then support without a gap
	m := model.MemberAvailability{Records: []model.AvailabilityRecord{
		rescue(0, 12, model.RescueImmediate),
		rescue(12, 24, model.RescueSupport),
	}}
	assert.True(t, coversInterval(m, shift, included))

	// Unavailable in the middle
	m = model.MemberAvailability{Records: []model.AvailabilityRecord{
		rescue(0, 10, model.RescueImmediate),
		rescue(10, 11, model.RescueUnavailable),
		rescue(11, 24, model.RescueImmediate),
	}}
	assert.False(t, coversInterval(m, shift, included))

	// Starts late
	m = model.MemberAvailability{Records: []model.AvailabilityRecord{rescue(7, 24, model.RescueImmediate)}}
	assert.False(t, coversInterval(m, shift, included))

	// Ends early
	m = model.MemberAvailability{Records: []model.AvailabilityRecord{rescue(0, 17, model.RescueImmediate)}}
	assert.False(t, coversInterval(m, shift, included))

	assert.False(t, coversInterval(model.MemberAvailability{}, shift, included))
}
