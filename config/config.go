// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WebhookFilters controls which generations are forwarded to the webhook.
type WebhookFilters struct {
	AIOnly       bool `yaml:"ai_only"`
	SkipRejected bool `yaml:"skip_rejected"`
}

// AIConfig shapes the background image URL handed out for the free provider.
type AIConfig struct {
	BaseURL string `yaml:"base_url"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// HistoryConfig toggles the local generation history.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RateLimitConfig is the per-client token bucket applied to the API.
// RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Config holds all application configuration values.
type Config struct {
	Port            int             `yaml:"port"`
	DataDir         string          `yaml:"data_dir"`
	WebhookURL      string          `yaml:"webhook_url"`
	WebhookFilters  WebhookFilters  `yaml:"webhook_filters"`
	AI              AIConfig        `yaml:"ai"`
	History         HistoryConfig   `yaml:"history"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	ShutdownTimeout Duration        `yaml:"shutdown_timeout"`
	LogLevel        string          `yaml:"log_level"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		Port:    7860,
		DataDir: filepath.Join(homeDir, ".aiqr"),
		AI: AIConfig{
			BaseURL: "https://image.pollinations.ai/prompt",
			Width:   1024,
			Height:  1024,
		},
		History:         HistoryConfig{Enabled: true},
		RateLimit:       RateLimitConfig{RPS: 5, Burst: 10},
		ShutdownTimeout: Duration{10 * time.Second},
		LogLevel:        "info",
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working directory
// is loaded into the process environment first, then AIQR_* variables
// override any file or default values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies AIQR_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AIQR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("AIQR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("AIQR_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("AIQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AIQR_HISTORY_ENABLED"); v != "" {
		if b, ok := parseBool(v); ok {
			cfg.History.Enabled = b
		}
	}
	if v := os.Getenv("AIQR_AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("AIQR_AI_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.Width = n
		}
	}
	if v := os.Getenv("AIQR_AI_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.Height = n
		}
	}
	if v := os.Getenv("AIQR_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("AIQR_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.Burst = n
		}
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// EnsureDataDir creates the DataDir if it does not already exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", c.DataDir, err)
	}
	return nil
}

// HistoryPath is the SQLite file backing the generation history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}
