package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sesroster/availability/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show minimum storm and rescue headcounts per block of the shift week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAt(app.Calendar, at)
			if err != nil {
				return err
			}

			app.Logger.Debug("stats command", zap.Time("at", t), zap.Int("buckets_per_day", app.Cfg.Buckets()))

			result, err := services.BuildAvailabilityStats(app.Ctx, app.Store, app.Calendar, app.Cfg, app.Logger, t)
			if err != nil {
				return err
			}

			const (
				colorReset = "\033[0m"
				colorRed   = "\033[31m"
			)

			fmt.Printf("\nAvailability %s - %s\n\n", result.Week.Start().Format(timeLayout), result.Week.End().Format(timeLayout))
			fmt.Printf("%-28s %8s %12s %12s\n", "Block", "Storm", "Rescue now", "Rescue any")
			fmt.Println(strings.Repeat("-", 63))

			for _, b := range result.Buckets {
				label := fmt.Sprintf("%s - %s", b.Bucket.Start().Format(timeLayout), b.Bucket.End().Format("15:04"))
				line := fmt.Sprintf("%-28s %8d %12d %12d", label, b.Storm, b.RescueImmediate, b.RescueAvailable)
				if !result.Week.Overlaps(b.Bucket) {
					// Outside the shift week itself
					fmt.Printf("\033[2m%s%s\n", line, colorReset)
					continue
				}
				fmt.Println(line)
			}

			if len(app.Cfg.CoverageTargets) == 0 {
				fmt.Println()
				return nil
			}

			fmt.Printf("\nCoverage shortfalls: %d\n", len(result.Shortfalls))
			for _, s := range result.Shortfalls {
				fmt.Printf("  %s%-30s%s %s - %s  %d of %d\n",
					colorRed, s.Target.Name, colorReset,
					s.Bucket.Start().Format(timeLayout), s.Bucket.End().Format("15:04"),
					s.Minimum, s.Target.Minimum)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Instant inside the week (YYYY-MM-DD[THH:MM], defaults to now)")
	return cmd
}
