// Package config provides configuration loading for services that embed
// authkit.
//
// It uses Viper to load configuration from YAML files and environment
// variables, and godotenv to pick up .env files from standard locations.
// Environment variables win over file values, so secrets like
// AUTHKIT_TOKEN_SECRET or TOKEN_SECRET never need to live in a committed
// config file.
//
// # Usage
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Auth authkit.Config `yaml:"auth" mapstructure:"auth"`
//	}
//
//	var cfg MyConfig
//	err := config.LoadConfig("my-service", &cfg)
package config
