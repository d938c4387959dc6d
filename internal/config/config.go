package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	DataSource struct {
		YahooBaseURL  string `yaml:"yahoo_base_url"`
		NSEBaseURL    string `yaml:"nse_base_url"`
		RatePerMinute int    `yaml:"rate_per_minute"`
		SyntheticSeed int64  `yaml:"synthetic_seed"`
	} `yaml:"data_source"`
	News struct {
		Enabled bool   `yaml:"enabled"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"news"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
		Retention  int    `yaml:"retention_days"`
	} `yaml:"database"`
	Schedule struct {
		PrewarmCron string `yaml:"prewarm_cron"`
		CleanupCron string `yaml:"cleanup_cron"`
		TrimCron    string `yaml:"trim_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.YahooBaseURL = v
	}
	if v := os.Getenv("NSE_BASE_URL"); v != "" {
		cfg.DataSource.NSEBaseURL = v
	}
	if v := os.Getenv("RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.RatePerMinute = n
		}
	}
	if v := os.Getenv("NEWS_ENABLED"); v != "" {
		cfg.News.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.DataSource.RatePerMinute == 0 {
		cfg.DataSource.RatePerMinute = 5
	}
	if cfg.Database.Retention == 0 {
		cfg.Database.Retention = 90
	}
	if cfg.Schedule.PrewarmCron == "" {
		cfg.Schedule.PrewarmCron = "0 */10 * * * *"
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "0 */5 * * * *"
	}
	if cfg.Schedule.TrimCron == "" {
		cfg.Schedule.TrimCron = "0 0 3 * * *"
	}

	return cfg, nil
}

// Validate checks that all configured values are usable.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.DataSource.RatePerMinute <= 0 {
		return fmt.Errorf("data_source.rate_per_minute must be positive")
	}
	if c.Database.Retention <= 0 {
		return fmt.Errorf("database.retention_days must be positive")
	}
	return nil
}
