package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime settings shared by all commands.
type Config struct {
	Server  ServerConfig
	Spanner SpannerConfig
	Outbox  OutboxConfig
}

type ServerConfig struct {
	Env      string
	LogLevel string
}

type SpannerConfig struct {
	ProjectID  string
	InstanceID string
	DatabaseID string
	// Database is the full resource name; derived from the IDs when unset.
	Database string
}

type OutboxConfig struct {
	CompletedRetentionDays int
	FailedRetentionDays    int
}

// Load reads settings from the environment, optionally overlaid by a .env file in dir.
// A missing .env file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SPANNER_PROJECT_ID", "test-project")
	v.SetDefault("SPANNER_INSTANCE_ID", "dev-instance")
	v.SetDefault("SPANNER_DATABASE_ID", "saleprice-db")
	v.SetDefault("OUTBOX_COMPLETED_RETENTION_DAYS", 7)
	v.SetDefault("OUTBOX_FAILED_RETENTION_DAYS", 30)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Env:      v.GetString("SERVER_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Spanner: SpannerConfig{
			ProjectID:  v.GetString("SPANNER_PROJECT_ID"),
			InstanceID: v.GetString("SPANNER_INSTANCE_ID"),
			DatabaseID: v.GetString("SPANNER_DATABASE_ID"),
			Database:   v.GetString("SPANNER_DATABASE"),
		},
		Outbox: OutboxConfig{
			CompletedRetentionDays: v.GetInt("OUTBOX_COMPLETED_RETENTION_DAYS"),
			FailedRetentionDays:    v.GetInt("OUTBOX_FAILED_RETENTION_DAYS"),
		},
	}

	if cfg.Spanner.Database == "" {
		cfg.Spanner.Database = cfg.Spanner.DatabasePath()
	}

	if cfg.Outbox.CompletedRetentionDays < 0 || cfg.Outbox.FailedRetentionDays < 0 {
		return nil, fmt.Errorf("outbox retention days must not be negative")
	}

	return cfg, nil
}

// DatabasePath builds the Spanner database resource name from the IDs.
func (c SpannerConfig) DatabasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", c.ProjectID, c.InstanceID, c.DatabaseID)
}
