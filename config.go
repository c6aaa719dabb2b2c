package authkit

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/password"
	"github.com/skillsenselab/authkit/token"
)

// Config aggregates every credential component behind one struct that
// mapstructure and YAML loaders can fill. Component configs are
// pointers: leaving Token or Password nil switches that feature off
// without tripping its validation. Logging is value-typed because the
// kit always logs.
type Config struct {
	// Enabled gates the whole kit. When false, Validate passes without
	// looking at any component.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Token, when non-nil, enables the token issue/verify service.
	Token *token.Config `mapstructure:"token" yaml:"token"`

	// Password, when non-nil, enables password hashing and policy checks.
	Password *password.Config `mapstructure:"password" yaml:"password"`

	// Logging configures the structured logger shared by all components.
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`
}

// ApplyDefaults fills defaults on the logging config and on every
// non-nil component config. Nil components stay nil.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Token != nil {
		c.Token.ApplyDefaults()
	}
	if c.Password != nil {
		c.Password.ApplyDefaults()
	}
}

// Validate checks the logging config and every non-nil component
// config. A disabled Config always validates.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Token != nil {
		if err := c.Token.Validate(); err != nil {
			return err
		}
	}
	if c.Password != nil {
		if err := c.Password.Validate(); err != nil {
			return fmt.Errorf("password: %w", err)
		}
	}
	return nil
}

// Describe summarizes the active components on one line for startup
// logs, for example "token(HS256) TTL=15m0s password=bcrypt". Secrets
// never appear in the summary.
func (c *Config) Describe() string {
	if !c.Enabled {
		return "disabled"
	}
	var parts []string
	if c.Token != nil {
		parts = append(parts, fmt.Sprintf("token(%s) TTL=%s", c.Token.Method, c.Token.AccessTokenTTL))
	}
	if c.Password != nil {
		parts = append(parts, "password="+string(c.Password.Algorithm))
	}
	if len(parts) == 0 {
		return "enabled (no components configured)"
	}
	return strings.Join(parts, " ")
}
