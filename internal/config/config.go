// Package config loads the application configuration shared by the
// desktop and terminal executables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"aerialtimer/internal/storage"
	"gopkg.in/yaml.v3"
)

// FileName is the application config file inside the config directory.
const FileName = "config.yaml"

type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
	Language string        `yaml:"language"`
	Timer    TimerOptions  `yaml:"timer"`
}

type StorageConfig struct {
	Backend storage.Backend `yaml:"backend"`
	DataDir string          `yaml:"data_dir"`
	Profile string          `yaml:"profile"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TimerOptions struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Default returns the configuration used when no file exists. dataDir is
// the per-user directory resolved by the platform layer.
func Default(dataDir string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendYAML,
			DataDir: dataDir,
			Profile: storage.DefaultProfile,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Timer: TimerOptions{TickInterval: time.Second},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides:
//
//	AERIALTIMER_STORAGE_BACKEND, AERIALTIMER_DATA_DIR, AERIALTIMER_PROFILE,
//	AERIALTIMER_LOG_LEVEL, AERIALTIMER_LOG_FORMAT, AERIALTIMER_LANG
//
// A missing file is not an error.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AERIALTIMER_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = storage.Backend(strings.ToLower(v))
	}
	if v := os.Getenv("AERIALTIMER_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("AERIALTIMER_PROFILE"); v != "" {
		cfg.Storage.Profile = v
	}
	if v := os.Getenv("AERIALTIMER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AERIALTIMER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("AERIALTIMER_LANG"); v != "" {
		cfg.Language = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case storage.BackendYAML, storage.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", storage.BackendYAML, storage.BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Storage.Profile == "" {
		c.Storage.Profile = storage.DefaultProfile
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive")
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger described by the log section,
// writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	options := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
