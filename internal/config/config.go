// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the whole application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// StoreConfig selects and configures the storage backend. Path applies to
// SQLite; the DB_* connection settings apply to PostgreSQL.
type StoreConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"./data/moneysplits.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"moneysplits"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"moneysplits"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// DSN returns the PostgreSQL connection string.
func (s StoreConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     net.JoinHostPort(s.Host, s.Port),
		Path:     "/" + s.Name,
		RawQuery: url.Values{"sslmode": {s.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("DB_PATH is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.Store.Host == "" || c.Store.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
