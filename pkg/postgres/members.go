package postgres

import (
	"context"
	"fmt"

	"github.com/sesroster/availability/pkg/db"
)

// GetMembers retrieves all member records ordered by member number
func (d *DB) GetMembers(ctx context.Context) ([]db.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT number, full_name, unit, team, qualifications
		FROM member
		ORDER BY number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		if err := rows.Scan(&m.Number, &m.FullName, &m.Unit, &m.Team, &m.Qualifications); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
