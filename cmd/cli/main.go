package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sesroster/availability/cmd/cli/commands"
	"github.com/sesroster/availability/internal/config"
	"github.com/sesroster/availability/pkg/core/calendar"
	"github.com/sesroster/availability/pkg/db"
	"github.com/sesroster/availability/pkg/postgres"
	"github.com/sesroster/availability/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "SES roster - member availability by shift week",
		Long:  `A CLI tool for viewing member availability, availability statistics and duty officer cover per shift week.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.WeekCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.StatsCmd(app))
	rootCmd.AddCommand(commands.DutyCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

// closeApp releases whatever initApp managed to open, including after a
// failed command
func closeApp() {
	if app.Postgres != nil {
		app.Postgres.Close()
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}

// initApp sets up logger, config, calendar and the availability store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	calCfg, err := app.Cfg.Calendar()
	if err != nil {
		return err
	}
	app.Calendar, err = calendar.New(calCfg)
	if err != nil {
		return fmt.Errorf("invalid shift calendar: %w", err)
	}
	app.Logger.Debug("Calendar ready",
		zap.String("timezone", app.Cfg.Timezone),
		zap.Stringer("week_start_day", calCfg.WeekStartDay),
		zap.Int("week_start_hour", calCfg.WeekStartHour))

	if app.Cfg.DatabaseURL != "" {
		app.Logger.Debug("Connecting to database")
		app.Postgres, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Store = app.Postgres
		return nil
	}

	app.Logger.Debug("Loading availability snapshot", zap.String("path", app.Cfg.SnapshotPath))
	app.Store, err = db.LoadFileStore(app.Cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	return nil
}
