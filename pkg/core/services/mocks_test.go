package services

import (
	"context"
	"time"

	"github.com/sesroster/availability/pkg/db"
)

// mockAvailabilityStore implements db.AvailabilityStore for testing
type mockAvailabilityStore struct {
	members      []db.Member
	availability []db.Availability
	membersErr   error
	availErr     error

	requestedFrom time.Time
	requestedTo   time.Time
}

func (m *mockAvailabilityStore) GetMembers(ctx context.Context) ([]db.Member, error) {
	if m.membersErr != nil {
		return nil, m.membersErr
	}
	return m.members, nil
}

func (m *mockAvailabilityStore) GetAvailability(ctx context.Context, from, to time.Time) ([]db.Availability, error) {
	m.requestedFrom = from
	m.requestedTo = to
	if m.availErr != nil {
		return nil, m.availErr
	}
	return m.availability, nil
}
