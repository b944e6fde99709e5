package db

import (
	"context"
	"time"
)

// MemberStore defines the member lookups used by the roster services
type MemberStore interface {
	GetMembers(ctx context.Context) ([]Member, error)
}

// AvailabilityStore defines the availability lookups used by the roster services.
// Both the file-backed db.FileStore and postgres.DB implement this interface.
type AvailabilityStore interface {
	MemberStore
	// GetAvailability returns every record overlapping [from, to)
	GetAvailability(ctx context.Context, from, to time.Time) ([]Availability, error)
}
