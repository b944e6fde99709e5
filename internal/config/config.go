package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/sesroster/availability/pkg/core/calendar"
)

const configFileName = "roster_config.yaml"

// Coverage measures a target can apply to
const (
	MeasureStorm           = "storm"
	MeasureRescueImmediate = "rescue-immediate"
	MeasureRescueAvailable = "rescue-available"
)

// CoverageTarget is a minimum headcount the stats report checks every bucket against
type CoverageTarget struct {
	Name          string `yaml:"name" validate:"required"`
	Measure       string `yaml:"measure" validate:"required,oneof=storm rescue-immediate rescue-available"`
	Minimum       int    `yaml:"minimum" validate:"min=1"`
	Qualification string `yaml:"qualification,omitempty"`
	// RRule limits the target to days with an occurrence, e.g. FREQ=WEEKLY;BYDAY=SA,SU
	RRule string `yaml:"rrule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Timezone            string `yaml:"timezone" validate:"required,timezone"`
	WeekStartDay        string `yaml:"weekStartDay,omitempty" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	WeekStartHour       *int   `yaml:"weekStartHour,omitempty" validate:"omitempty,min=0,max=23"`
	DayShiftStartHour   *int   `yaml:"dayShiftStartHour,omitempty" validate:"omitempty,min=0,max=23"`
	NightShiftStartHour *int   `yaml:"nightShiftStartHour,omitempty" validate:"omitempty,min=0,max=23"`

	// BucketsPerDay is how many blocks each day is split into for statistics
	BucketsPerDay int `yaml:"bucketsPerDay,omitempty" validate:"omitempty,oneof=1 2 3 4 6 8 12 24"`

	DatabaseURL  string `yaml:"databaseURL,omitempty" validate:"required_without=SnapshotPath"`
	SnapshotPath string `yaml:"snapshotPath,omitempty"`

	DutyOfficerQualification string           `yaml:"dutyOfficerQualification,omitempty"`
	CoverageTargets          []CoverageTarget `yaml:"coverageTargets,omitempty" validate:"dive"`
}

const defaultBucketsPerDay = 4

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv prefers <env>_roster_config.yaml and falls back to roster_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	if env != "" {
		if configPath, err := findConfigFile(env + "_" + configFileName); err == nil {
			return LoadFromPath(configPath)
		}
	}
	return Load()
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, checks rrule syntax and the
// shift calendar
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, target := range cfg.CoverageTargets {
		if target.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(target.RRule); err != nil {
			return fmt.Errorf("invalid rrule in coverageTargets[%d]: %w", i, err)
		}
	}

	calCfg, err := cfg.Calendar()
	if err != nil {
		return err
	}
	if _, err := calendar.New(calCfg); err != nil {
		return fmt.Errorf("invalid shift calendar: %w", err)
	}

	return nil
}

// Calendar builds the shift calendar configuration, filling unset values with defaults
func (c *Config) Calendar() (calendar.Config, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}

	cfg := calendar.DefaultConfig(loc)
	if c.WeekStartDay != "" {
		cfg.WeekStartDay = parseWeekday(c.WeekStartDay)
	}
	if c.WeekStartHour != nil {
		cfg.WeekStartHour = *c.WeekStartHour
	}
	if c.DayShiftStartHour != nil {
		cfg.DayShiftStartHour = *c.DayShiftStartHour
	}
	if c.NightShiftStartHour != nil {
		cfg.NightShiftStartHour = *c.NightShiftStartHour
	}
	return cfg, nil
}

// Buckets returns BucketsPerDay or the default of four six-hour blocks
func (c *Config) Buckets() int {
	if c.BucketsPerDay == 0 {
		return defaultBucketsPerDay
	}
	return c.BucketsPerDay
}

func parseWeekday(name string) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d
		}
	}
	return calendar.DefaultWeekStartDay
}

// findConfigFile searches for the named file in current directory and home directory
func findConfigFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
