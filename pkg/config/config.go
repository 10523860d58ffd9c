package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Feed struct {
		Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=Super chat events API endpoint"`
		Token         string        `yaml:"token" json:"token" jsonschema:"description=OAuth access token (can use environment variable)"`
		PageSize      int           `yaml:"page_size" json:"page_size" jsonschema:"default=50,minimum=1,maximum=50,description=Events per page"`
		Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request timeout"`
		RetryAttempts int           `yaml:"retry_attempts" json:"retry_attempts" jsonschema:"default=3,description=Page request attempts before the cycle aborts"`
		RetryDelay    time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=500ms,description=Initial retry backoff delay"`
		RetryMaxDelay time.Duration `yaml:"retry_max_delay" json:"retry_max_delay" jsonschema:"default=5s,description=Retry backoff cap"`
	} `yaml:"feed" json:"feed" jsonschema:"description=Remote feed configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:giftmon.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		FetchInterval time.Duration `yaml:"fetch_interval" json:"fetch_interval" jsonschema:"default=60s,description=Time between fetch cycles"`
		FetchOnStart  bool          `yaml:"fetch_on_start" json:"fetch_on_start" jsonschema:"default=false,description=Run one fetch cycle before the scheduler starts"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Server struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the HTTP control surface"`
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Control server configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for feed
	if cfg.Feed.PageSize == 0 {
		cfg.Feed.PageSize = 50
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Feed.RetryAttempts == 0 {
		cfg.Feed.RetryAttempts = 3
	}
	if cfg.Feed.RetryDelay == 0 {
		cfg.Feed.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Feed.RetryMaxDelay == 0 {
		cfg.Feed.RetryMaxDelay = 5 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:giftmon.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.FetchInterval == 0 {
		cfg.Schedule.FetchInterval = time.Minute
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Feed.PageSize < 1 || cfg.Feed.PageSize > 50 {
		return fmt.Errorf("feed.page_size must be between 1 and 50")
	}
	if cfg.Feed.Timeout < time.Second {
		return fmt.Errorf("feed.timeout must be at least 1 second")
	}
	if cfg.Feed.RetryAttempts < 1 {
		return fmt.Errorf("feed.retry_attempts must be at least 1")
	}

	if cfg.Schedule.FetchInterval <= 0 {
		return fmt.Errorf("schedule.fetch_interval must be positive")
	}

	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}
