package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RetentionForever is the session_retention_days sentinel meaning
// per-session detail is never pruned.
const RetentionForever = -1

// Config holds the settings the engine consumes. Retention bounds how
// long per-session detail is kept; aggregates are permanent regardless.
type Config struct {
	DBPath               string `mapstructure:"db_path"`
	SessionRetentionDays int    `mapstructure:"session_retention_days"`
}

// Default returns the built-in settings: 90 days of session retention
// and a database under the user's home directory.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DBPath:               filepath.Join(home, ".tempus", "tempus.db"),
		SessionRetentionDays: 90,
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "tempus")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when it is
// absent. The TEMPUS_DB environment variable overrides the database
// path.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("session_retention_days", cfg.SessionRetentionDays)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if env := os.Getenv("TEMPUS_DB"); env != "" {
		cfg.DBPath = env
	}
	if cfg.SessionRetentionDays < RetentionForever {
		return cfg, fmt.Errorf("session_retention_days must be >= -1, got %d", cfg.SessionRetentionDays)
	}
	return cfg, nil
}
