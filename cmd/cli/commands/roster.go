package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/availability"
	"github.com/sesroster/availability/pkg/core/model"
	"github.com/sesroster/availability/pkg/core/services"
)

// dayWidth is the number of characters drawn per day, one per hour
const dayWidth = 24

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	var (
		at         string
		fieldsFlag string
	)

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show every member's availability across the shift week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAt(app.Calendar, at)
			if err != nil {
				return err
			}
			fields, err := parseFields(fieldsFlag)
			if err != nil {
				return err
			}

			app.Logger.Debug("roster command", zap.Time("at", t), zap.String("fields", fieldsFlag))

			result, err := services.BuildWeekRoster(app.Ctx, app.Store, app.Calendar, app.Logger, t, fields)
			if err != nil {
				return err
			}

			nameColWidth := 20
			for _, row := range result.Rows {
				if len(row.Member.FullName)+2 > nameColWidth {
					nameColWidth = len(row.Member.FullName) + 2
				}
			}

			fmt.Printf("\nRoster %s - %s\n\n", result.Week.Start().Format(timeLayout), result.Week.End().Format(timeLayout))

			fmt.Printf("%-*s", nameColWidth, "")
			for _, day := range result.Days {
				fmt.Printf("|%-*s", dayWidth, day.Start().Format("Mon 02"))
			}
			fmt.Println("|")
			fmt.Println(strings.Repeat("-", nameColWidth+len(result.Days)*(dayWidth+1)+1))

			for _, row := range result.Rows {
				fmt.Printf("%-*s", nameColWidth, row.Member.FullName)
				for day := range result.Days {
					fmt.Printf("|%s", renderDay(row.Blocks, day, fields))
				}
				fmt.Println("|")
			}

			fmt.Println()
			fmt.Println("Legend:")
			fmt.Println("  S = storm available      s = storm unavailable")
			fmt.Println("  R = rescue immediate     r = rescue support    x = rescue unavailable")
			fmt.Println("  . = recorded, no status  (blank) = nothing recorded")

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Instant inside the week (YYYY-MM-DD[THH:MM], defaults to now)")
	cmd.Flags().StringVar(&fieldsFlag, "fields", "storm,rescue", "Fields abutting records must share to merge (storm,rescue,vehicle,note,all)")
	return cmd
}

// renderDay draws the blocks of one day column as a dayWidth-wide bar.
// Later blocks overwrite earlier ones where they share a character.
func renderDay(blocks []services.Block, day int, fields availability.FieldSet) string {
	bar := []rune(strings.Repeat(" ", dayWidth))
	for _, b := range blocks {
		if b.Day != day {
			continue
		}
		from := int(math.Floor(b.From * dayWidth))
		to := int(math.Ceil(b.To * dayWidth))
		if to > dayWidth {
			to = dayWidth
		}
		symbol := blockSymbol(b.Record, fields)
		for i := from; i < to; i++ {
			bar[i] = symbol
		}
	}
	return string(bar)
}

// blockSymbol prefers the storm status, then rescue, limited to the merged fields
func blockSymbol(record model.AvailabilityRecord, fields availability.FieldSet) rune {
	if fields.Has(availability.FieldStorm) {
		switch record.Storm {
		case model.StormAvailable:
			return 'S'
		case model.StormUnavailable:
			if record.Rescue == model.RescueUnset || !fields.Has(availability.FieldRescue) {
				return 's'
			}
		}
	}
	if fields.Has(availability.FieldRescue) {
		switch record.Rescue {
		case model.RescueImmediate:
			return 'R'
		case model.RescueSupport:
			return 'r'
		case model.RescueUnavailable:
			return 'x'
		}
	}
	return '.'
}
