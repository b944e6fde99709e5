package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sesroster/availability/pkg/db"
)

// GetAvailability retrieves availability records overlapping [from, to),
// ordered by member and start time. Timestamps are returned as RFC 3339
// strings in UTC; the caller converts them into its own zone.
func (d *DB) GetAvailability(ctx context.Context, from, to time.Time) ([]db.Availability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, member_number, start_time, end_time, storm, rescue, vehicle, note
		FROM availability
		WHERE start_time < $2 AND end_time > $1
		ORDER BY member_number, start_time
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var records []db.Availability
	for rows.Next() {
		var a db.Availability
		var start, end time.Time
		var storm, rescue, vehicle, note *string
		if err := rows.Scan(&a.ID, &a.MemberNumber, &start, &end, &storm, &rescue, &vehicle, &note); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		a.Start = start.UTC().Format(time.RFC3339Nano)
		a.End = end.UTC().Format(time.RFC3339Nano)
		a.Storm = deref(storm)
		a.Rescue = deref(rescue)
		a.Vehicle = deref(vehicle)
		a.Note = deref(note)
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return records, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
