package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver            string `yaml:"driver" env:"DB_DRIVER"`
		Host              string `yaml:"host" env:"DB_HOST"`
		Port              string `yaml:"port" env:"DB_PORT"`
		User              string `yaml:"user" env:"DB_USER"`
		Password          string `yaml:"password" env:"DB_PASSWORD"`
		DBName            string `yaml:"dbname" env:"DB_NAME"`
		SSLMode           string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns      int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns      int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime   string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsEnabled bool   `yaml:"migrations_enabled" env:"DB_MIGRATIONS_ENABLED"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RateLimit struct {
		MessageLimit  int    `yaml:"message_limit" env:"RATE_LIMIT_MESSAGE_LIMIT"`
		MessageWindow string `yaml:"message_window" env:"RATE_LIMIT_MESSAGE_WINDOW"`
		ReportLimit   int    `yaml:"report_limit" env:"RATE_LIMIT_REPORT_LIMIT"`
		ReportWindow  string `yaml:"report_window" env:"RATE_LIMIT_REPORT_WINDOW"`
	} `yaml:"rate_limit"`

	NATS struct {
		Enabled bool   `yaml:"enabled" env:"NATS_ENABLED"`
		URL     string `yaml:"url" env:"NATS_URL"`
		Name    string `yaml:"name" env:"NATS_CLIENT_NAME"`
	} `yaml:"nats"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "zevabayan"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsEnabled = true

	config.JWT.Issuer = "zevabayan"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Redis.Addr = "localhost:6379"

	config.RateLimit.MessageLimit = 20
	config.RateLimit.MessageWindow = "1m"
	config.RateLimit.ReportLimit = 5
	config.RateLimit.ReportWindow = "1h"

	config.NATS.URL = "nats://localhost:4222"
	config.NATS.Name = "zevabayan-api"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"server shutdown timeout":      config.Server.ShutdownTimeout,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"message rate limit window":    config.RateLimit.MessageWindow,
		"report rate limit window":     config.RateLimit.ReportWindow,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.RateLimit.MessageLimit <= 0 || config.RateLimit.ReportLimit <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// Duration parses a duration field that validateConfig already accepted
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
