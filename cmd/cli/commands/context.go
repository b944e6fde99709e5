package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sesroster/availability/internal/config"
	"github.com/sesroster/availability/pkg/core/availability"
	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/core/interval"
	"github.com/sesroster/availability/pkg/db"
	"github.com/sesroster/availability/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Calendar *calendar.Calendar
	Store    db.AvailabilityStore
	// Postgres is nil when availability comes from a snapshot file
	Postgres *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}

// Accepted --at layouts, read in the calendar's zone
var atLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseAt resolves the --at flag. Empty means now.
func parseAt(cal *calendar.Calendar, value string) (time.Time, error) {
	if value == "" {
		return cal.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(cal.Location()), nil
	}
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, value, cal.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at value %q, expected YYYY-MM-DD[THH:MM]", value)
}

// shiftWeekAt resolves the --at flag together with the shift week containing it
func shiftWeekAt(cal *calendar.Calendar, value string) (time.Time, interval.Interval, error) {
	if value == "" {
		return cal.Now(), cal.CurrentShiftWeek(), nil
	}
	t, err := parseAt(cal, value)
	if err != nil {
		return time.Time{}, interval.Interval{}, err
	}
	return t, cal.ShiftWeek(t), nil
}

// parseFields reads a comma separated list of record fields to merge on
func parseFields(value string) (availability.FieldSet, error) {
	var fields availability.FieldSet
	for _, name := range strings.Split(value, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "storm":
			fields |= availability.FieldStorm
		case "rescue":
			fields |= availability.FieldRescue
		case "vehicle":
			fields |= availability.FieldVehicle
		case "note":
			fields |= availability.FieldNote
		case "all":
			fields |= availability.AllFields
		default:
			return 0, fmt.Errorf("unknown field %q, expected storm, rescue, vehicle, note or all", name)
		}
	}
	if fields == 0 {
		return 0, fmt.Errorf("at least one field is required")
	}
	return fields, nil
}

const timeLayout = "Mon 02 Jan 15:04"
