package config

import (
	"fmt"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/version"
)

// Service environments. Development is the fallback and switches debug
// conveniences on; staging and production keep them off.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is what LoadService expects of a host configuration. Any struct
// that embeds ServiceConfig satisfies it through promoted methods:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Auth authkit.Config `yaml:"auth" mapstructure:"auth"`
//	}
type Config interface {
	GetServiceConfig() *ServiceConfig
	ApplyDefaults()
	Validate() error
}

// ServiceConfig carries the fields every authkit host shares: identity,
// environment, debug flag, and logging.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig. Embedding promotes the
// method, so any host config satisfies the Config interface for free.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// IsProduction reports whether the service runs in production.
func (c *ServiceConfig) IsProduction() bool { return c.Environment == EnvProduction }

// IsDevelopment reports whether the service runs in development.
func (c *ServiceConfig) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// ApplyDefaults fills the base fields: development environment, debug on
// in development, and the build's embedded version string. Embedding
// structs that override this should call it before their own defaults.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.IsDevelopment() {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	// Logging inherits the service name unless one was set explicitly.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the base fields. Embedding structs that override this
// should call it before their own checks.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// LoadService is the one-call host setup: it layers configuration from
// files and the environment into cfg, applies defaults, validates, and
// initializes the global logger from the result.
func LoadService(serviceName string, cfg Config, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	logger.Init(&cfg.GetServiceConfig().Logging)
	return nil
}
