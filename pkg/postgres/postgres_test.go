package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Sorted(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)

	require.NotEmpty(t, files)
	assert.Equal(t, "001_create_roster_tables.sql", files[0])
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i])
	}
}

func TestDeref(t *testing.T) {
	s := "AVAILABLE"
	assert.Equal(t, "AVAILABLE", deref(&s))
	assert.Equal(t, "", deref(nil))
}

// openTestDB connects to the database named by ROSTER_TEST_DATABASE_URL,
// skipping the test when it is not set
func openTestDB(t *testing.T) *DB {
	t.Helper()
	connString := os.Getenv("ROSTER_TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("ROSTER_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	d, err := NewDB(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	_, err = d.RunMigrations(ctx)
	require.NoError(t, err)

	_, err = d.pool.Exec(ctx, `TRUNCATE availability, member`)
	require.NoError(t, err)

	return d
}

func TestRunMigrations_Idempotent(t *testing.T) {
	d := openTestDB(t)

	ran, err := d.RunMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ran)
}

func TestGetMembers_Integration(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	_, err := d.pool.Exec(ctx, `
		INSERT INTO member (number, full_name, team, qualifications) VALUES
			(40124, 'Sam Volunteer', 'Bravo', '{}'),
			(40123, 'Alex Citizen', 'Alpha', '{FLOOD_RESCUE_L3,CHAINSAW}')
	`)
	require.NoError(t, err)

	members, err := d.GetMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, 40123, members[0].Number)
	assert.Equal(t, []string{"FLOOD_RESCUE_L3", "CHAINSAW"}, members[0].Qualifications)
	assert.Equal(t, "Bravo", members[1].Team)
	assert.Empty(t, members[1].Qualifications)
}

func TestGetAvailability_Integration(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	_, err := d.pool.Exec(ctx, `
		INSERT INTO member (number, full_name) VALUES (40123, 'Alex Citizen');
	`)
	require.NoError(t, err)

	_, err = d.pool.Exec(ctx, `
		INSERT INTO availability (member_number, start_time, end_time, storm, rescue, vehicle) VALUES
			(40123, '2024-01-07T13:00:00Z', '2024-01-07T19:00:00Z', 'AVAILABLE', NULL, NULL),
			(40123, '2024-01-07T19:00:00Z', '2024-01-08T01:00:00Z', 'AVAILABLE', 'IMMEDIATE', 'WOL-24'),
			(40123, '2024-01-20T00:00:00Z', '2024-01-21T00:00:00Z', 'UNAVAILABLE', NULL, NULL)
	`)
	require.NoError(t, err)

	from := time.Date(2024, 1, 7, 13, 0, 0, 0, time.UTC)
	records, err := d.GetAvailability(ctx, from, from.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024-01-07T13:00:00Z", records[0].Start)
	assert.Equal(t, "", records[0].Rescue)
	assert.Equal(t, "IMMEDIATE", records[1].Rescue)
	assert.Equal(t, "WOL-24", records[1].Vehicle)
	assert.NotEmpty(t, records[1].ID)
}
