package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/core/services"
)

// DutyCmd creates the duty command
func DutyCmd(app *AppContext) *cobra.Command {
	var (
		at        string
		shiftFlag string
	)

	cmd := &cobra.Command{
		Use:   "duty",
		Short: "List duty officer candidates for each shift of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAt(app.Calendar, at)
			if err != nil {
				return err
			}

			app.Logger.Debug("duty command", zap.Time("at", t), zap.String("shift", shiftFlag))

			result, err := services.BuildDutySchedule(app.Ctx, app.Store, app.Calendar, app.Cfg, app.Logger, t)
			if err != nil {
				return err
			}

			shifts, err := filterShifts(result.Shifts, shiftFlag)
			if err != nil {
				return err
			}

			fmt.Printf("\nDuty officers %s - %s\n\n", result.Week.Start().Format(timeLayout), result.Week.End().Format(timeLayout))
			for _, s := range shifts {
				fmt.Printf("%-5s %s - %s  rescue min %d\n",
					s.Shift.Shift,
					s.Shift.Interval.Start().Format(timeLayout),
					s.Shift.Interval.End().Format(timeLayout),
					s.MinimumRescue)
				fmt.Printf("      %s\n", candidateList(s.Candidates))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Instant inside the week (YYYY-MM-DD[THH:MM], defaults to now)")
	cmd.Flags().StringVar(&shiftFlag, "shift", "", "Only show DAY or NIGHT shifts")
	return cmd
}

// filterShifts keeps the shifts of the named kind; empty keeps all
func filterShifts(shifts []services.DutyShift, value string) ([]services.DutyShift, error) {
	if value == "" {
		return shifts, nil
	}
	kind, err := model.ParseShift(value)
	if err != nil {
		return nil, err
	}

	var filtered []services.DutyShift
	for _, s := range shifts {
		if s.Shift.Shift == kind {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func candidateList(members []model.Member) string {
	if len(members) == 0 {
		return "no candidates"
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprintf("%s (%d)", m.FullName, m.Number)
	}
	return strings.Join(names, ", ")
}
