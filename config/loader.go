package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/skillsenselab/authkit/logger"
)

// LoaderConfig holds loader dependencies and optional explicit file paths.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption customizes a LoadConfig call.
type LoaderOption func(*LoaderConfig)

// WithFileSystem substitutes the filesystem used for discovery and .env
// loading.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(o *LoaderConfig) { o.FileSystem = fs }
}

// WithConfigFile pins the config file instead of searching for one.
func WithConfigFile(path string) LoaderOption {
	return func(o *LoaderConfig) { o.ConfigFile = path }
}

// WithEnvFile pins the .env file instead of searching for one.
func WithEnvFile(path string) LoaderOption {
	return func(o *LoaderConfig) { o.EnvFile = path }
}

// LoadConfig fills cfg for the named service. Values are layered: config.yml
// first, then the process environment and any .env file on top, so
// AUTHKIT_TOKEN_SECRET always overrides a secret committed to a file.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: &RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)
	return loadResolved(serviceName, cfg, files, lc.FileSystem)
}

func loadResolved(serviceName string, cfg interface{}, files ResolvedFiles, fs FileSystem) error {
	log := logger.Get(logger.ComponentConfig)
	v := viper.New()

	mergeConfigFile(v, fs, files.ConfigFile, log)

	// The .env file is folded into the process environment before binding
	// so both sources reach viper the same way.
	foldEnvFile(fs, files.EnvFile, log)
	v.AutomaticEnv()
	bindEnvironment(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// mergeConfigFile reads the YAML base layer. A broken file downgrades to a
// warning so a service can still boot from the environment alone.
func mergeConfigFile(v *viper.Viper, fs FileSystem, path string, log *logger.Logger) {
	if path == "" || !fs.Exists(path) {
		return
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		log.Warn("failed to load config file", logger.Fields(
			"file", path,
			logger.FieldError, err.Error(),
		))
	}
}

// foldEnvFile loads a .env file into the process environment, warning on
// parse failures instead of aborting.
func foldEnvFile(fs FileSystem, path string, log *logger.Logger) {
	if path == "" || !fs.Exists(path) {
		return
	}
	if err := fs.LoadEnv(path); err != nil {
		log.Warn("failed to load .env file", logger.Fields(
			"file", path,
			logger.FieldError, err.Error(),
		))
	}
}

// bindEnvironment force-sets every environment variable on v under each key
// alias a mapstructure path could use. viper's Set layer outranks the file
// layer, which is what makes the environment win.
func bindEnvironment(v *viper.Viper) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		for _, alias := range envKeyAliases(key) {
			v.Set(alias, value)
		}
	}
}

// envKeyAliases lists the viper keys an UPPER_SNAKE environment variable
// may address. Each underscore is a potential nesting boundary, so every
// split into a dotted prefix and an underscored remainder is produced:
//
//	TOKEN_SECRET         -> token_secret, token.secret
//	AUTHKIT_TOKEN_SECRET -> authkit_token_secret, authkit.token_secret,
//	                        authkit.token.secret
func envKeyAliases(key string) []string {
	lower := strings.ToLower(key)
	parts := strings.Split(lower, "_")
	aliases := []string{lower}
	for cut := 1; cut < len(parts); cut++ {
		aliases = append(aliases, strings.Join(parts[:cut], ".")+"."+strings.Join(parts[cut:], "_"))
	}
	return aliases
}
