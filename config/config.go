package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	BusinessHours BusinessHoursConfig `yaml:"business_hours"`
	Mailer        MailerConfig        `yaml:"mailer"`
	WorkerPool    WorkerPoolConfig    `yaml:"worker_pool"`
	Sweeper       SweeperConfig       `yaml:"sweeper"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                int     `yaml:"port"`
	RateLimitPerSec     float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds     int     `yaml:"cache_ttl_seconds"`
	StoreTimeoutSeconds int     `yaml:"store_timeout_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// BusinessHoursConfig defines the daily bookable window and slot spacing.
type BusinessHoursConfig struct {
	Open        string `yaml:"open"`
	Close       string `yaml:"close"`
	SlotMinutes int    `yaml:"slot_minutes"`
}

// MailerConfig holds the SMTP settings for booking confirmation emails.
// When Enabled is false the worker logs messages instead of sending them.
type MailerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// SweeperConfig controls the background job that marks elapsed bookings done.
type SweeperConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}
	if cfg.Server.StoreTimeoutSeconds <= 0 {
		cfg.Server.StoreTimeoutSeconds = 5
	}

	if cfg.BusinessHours.Open == "" {
		cfg.BusinessHours.Open = "08:00"
	}
	if cfg.BusinessHours.Close == "" {
		cfg.BusinessHours.Close = "17:00"
	}
	if cfg.BusinessHours.SlotMinutes <= 0 {
		cfg.BusinessHours.SlotMinutes = 30
	}
	if _, err := time.Parse("15:04", cfg.BusinessHours.Open); err != nil {
		return fmt.Errorf("invalid business_hours.open %q: %w", cfg.BusinessHours.Open, err)
	}
	if _, err := time.Parse("15:04", cfg.BusinessHours.Close); err != nil {
		return fmt.Errorf("invalid business_hours.close %q: %w", cfg.BusinessHours.Close, err)
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Sweeper.IntervalSeconds <= 0 {
		cfg.Sweeper.IntervalSeconds = 300
	}
	cfg.Sweeper.Interval = time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second

	return nil
}
