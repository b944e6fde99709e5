package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sesroster/availability/pkg/core/calendar"
)

func sydneyCalendar(t *testing.T) (*calendar.Calendar, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	cal, err := calendar.New(calendar.DefaultConfig(loc))
	require.NoError(t, err)
	return cal, loc
}

// wednesday is inside the shift week [Mon 2024-01-08 18:00, Mon 2024-01-15 18:00) Sydney
func wednesday(loc *time.Location) time.Time {
	return time.Date(2024, 1, 10, 10, 0, 0, 0, loc)
}
