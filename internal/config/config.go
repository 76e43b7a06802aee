package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/selector-project/selector-manager/internal/selector"
)

// ServiceConfig holds service-level configuration
type ServiceConfig struct {
	BindAddress string `envconfig:"BIND_ADDRESS" default:"0.0.0.0:8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// DBConfig holds database configuration
type DBConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"selector-manager"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASSWORD" default:"adminpass"`
}

// SelectorConfig holds length limits applied to label keys and values.
// Defaults follow the Kubernetes conventions (63/253/63).
type SelectorConfig struct {
	MaxKeyNameLength   int `envconfig:"SELECTOR_MAX_KEY_NAME_LENGTH" default:"63"`
	MaxKeyPrefixLength int `envconfig:"SELECTOR_MAX_KEY_PREFIX_LENGTH" default:"253"`
	MaxValueLength     int `envconfig:"SELECTOR_MAX_VALUE_LENGTH" default:"63"`
}

// Limits converts the configuration into the engine's limit set.
func (c SelectorConfig) Limits() selector.Limits {
	return selector.Limits{
		MaxNameLength:   c.MaxKeyNameLength,
		MaxPrefixLength: c.MaxKeyPrefixLength,
		MaxValueLength:  c.MaxValueLength,
	}
}

// Config is the root configuration structure
type Config struct {
	Service  ServiceConfig
	Database *DBConfig
	Selector SelectorConfig
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: &DBConfig{},
	}
	if err := envconfig.Process("", &cfg.Service); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Selector); err != nil {
		return nil, err
	}
	return cfg, nil
}
