package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// Config holds process-wide settings read from the environment.
type Config struct {
	// Storage driver: sqlite or postgres
	DBType string
	// SQLite database file
	DBPath string
	// Postgres connection string
	DatabaseURL string
	// Words offered per day to users without their own goal
	DefaultDailyGoal int
	// Logging
	LogLevel string
	LogDir   string
	// Location used to decide where a day starts
	Location *time.Location
	// Time of day (HH:MM) for the nightly repair job
	RepairAt string
	// Label long-retained words as mastered
	MasteryTracking bool
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_type", DBTypeSQLite)
	v.SetDefault("db_path", "data/wordsrs.db")
	v.SetDefault("database_url", "")
	v.SetDefault("default_daily_goal", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
	v.SetDefault("timezone", "Local")
	v.SetDefault("repair_at", "03:00")
	v.SetDefault("mastery_tracking", false)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		DBType:           strings.ToLower(v.GetString("db_type")),
		DBPath:           v.GetString("db_path"),
		DatabaseURL:      v.GetString("database_url"),
		DefaultDailyGoal: v.GetInt("default_daily_goal"),
		LogLevel:         v.GetString("log_level"),
		LogDir:           v.GetString("log_dir"),
		Location:         loc,
		RepairAt:         v.GetString("repair_at"),
		MasteryTracking:  v.GetBool("mastery_tracking"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH must be set for sqlite")
		}
	case DBTypePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}

	if c.DefaultDailyGoal < 0 {
		return fmt.Errorf("DEFAULT_DAILY_GOAL must not be negative, got %d", c.DefaultDailyGoal)
	}
	if _, err := time.Parse("15:04", c.RepairAt); err != nil {
		return fmt.Errorf("REPAIR_AT must be HH:MM, got %q", c.RepairAt)
	}
	return nil
}
