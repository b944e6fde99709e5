package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// WeekCmd creates the week command
func WeekCmd(app *AppContext) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the shift week, its days and shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, week, err := shiftWeekAt(app.Calendar, at)
			if err != nil {
				return err
			}

			app.Logger.Debug("week command", zap.Time("at", t), zap.Stringer("week", week))

			fmt.Printf("\nShift week %s - %s (%s)\n", week.Start().Format(timeLayout), week.End().Format(timeLayout), week.Duration())
			fmt.Printf("Current shift at %s: %s\n\n", t.Format(timeLayout), app.Calendar.CurrentShift(t))

			fmt.Println("Days:")
			for i, day := range app.Calendar.DayIntervals(week) {
				fmt.Printf("  %d. %s\n", i+1, day.Start().Format("Mon 02 Jan 2006"))
			}

			fmt.Println("\nShifts:")
			for _, s := range app.Calendar.ShiftIntervals(week) {
				fmt.Printf("  %-5s %s - %s\n", s.Shift, s.Interval.Start().Format(timeLayout), s.Interval.End().Format(timeLayout))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Instant inside the week (YYYY-MM-DD[THH:MM], defaults to now)")
	return cmd
}
