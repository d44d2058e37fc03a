// Package config loads server configuration from an optional YAML file with
// GAMEHALL_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Admin    AdminConfig    `yaml:"admin"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type AdminConfig struct {
	Password      string `yaml:"password"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type SnapshotConfig struct {
	BatchSize      int    `yaml:"batch_size"`
	FreshnessHours int    `yaml:"freshness_hours"`
	RetentionDays  int    `yaml:"retention_days"`
	Cadence        string `yaml:"cadence"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{DataDir: "data"},
		Admin:   AdminConfig{TokenTTLHours: 24},
		Snapshot: SnapshotConfig{
			BatchSize:      12,
			FreshnessHours: 2,
			RetentionDays:  7,
			Cadence:        "0 * * * *",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from path (skipped if empty or missing) and
// applies environment overrides. The admin password has no default and must
// be provided one way or the other.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				slog.Warn("ignoring non-integer environment override", "key", key, "value", v)
				return
			}
			*dst = n
		}
	}

	setInt("GAMEHALL_PORT", &cfg.Server.Port)
	setString("GAMEHALL_DATA_DIR", &cfg.Storage.DataDir)
	setString("GAMEHALL_ADMIN_PASSWORD", &cfg.Admin.Password)
	setInt("GAMEHALL_TOKEN_TTL_HOURS", &cfg.Admin.TokenTTLHours)
	setInt("GAMEHALL_BATCH_SIZE", &cfg.Snapshot.BatchSize)
	setInt("GAMEHALL_FRESHNESS_HOURS", &cfg.Snapshot.FreshnessHours)
	setInt("GAMEHALL_RETENTION_DAYS", &cfg.Snapshot.RetentionDays)
	setString("GAMEHALL_CADENCE", &cfg.Snapshot.Cadence)
	setString("GAMEHALL_LOG_LEVEL", &cfg.Log.Level)
}

func (c Config) validate() error {
	if c.Admin.Password == "" {
		return errors.New("missing required config: admin password. " +
			"Set it in the config file (admin.password) or via GAMEHALL_ADMIN_PASSWORD")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Snapshot.BatchSize <= 0 {
		return fmt.Errorf("snapshot batch_size must be positive, got %d", c.Snapshot.BatchSize)
	}
	if c.Snapshot.FreshnessHours <= 0 {
		return fmt.Errorf("snapshot freshness_hours must be positive, got %d", c.Snapshot.FreshnessHours)
	}
	if c.Snapshot.RetentionDays <= 0 {
		return fmt.Errorf("snapshot retention_days must be positive, got %d", c.Snapshot.RetentionDays)
	}
	return nil
}

// Freshness is the maximum batch age for public reads.
func (c SnapshotConfig) Freshness() time.Duration {
	return time.Duration(c.FreshnessHours) * time.Hour
}

// Retention is the horizon past which snapshot rows are pruned.
func (c SnapshotConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// FreshnessExceedsRetention reports a freshness window longer than the
// retention horizon. Such a setup makes the fresh-batch query always miss;
// it is flagged at startup rather than rejected.
func (c SnapshotConfig) FreshnessExceedsRetention() bool {
	return c.Freshness() > c.Retention()
}

// TokenTTL is how long issued admin tokens stay valid.
func (c AdminConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}
