package password

import "fmt"

// Algorithm selects a password hashing implementation.
type Algorithm string

const (
	// AlgorithmBcrypt hashes with bcrypt. Interoperable with every major
	// framework; the safe default.
	AlgorithmBcrypt Algorithm = "bcrypt"

	// AlgorithmArgon2id hashes with argon2id, the memory-hard PHC scheme.
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Hashing defaults. ApplyDefaults fills them into zero-valued fields and
// the hasher constructors start from them.
const (
	DefaultBcryptCost    = 12
	DefaultArgon2Time    = 1
	DefaultArgon2Memory  = 64 * 1024 // KiB
	DefaultArgon2Threads = 4
)

// Config selects and tunes the hashing algorithm and carries the minimum
// length for the derived strength policy. Loadable from YAML/env via
// mapstructure tags. Zero-valued fields take the package defaults;
// hashing itself never enforces MinLength, the derived Policy does.
type Config struct {
	Algorithm     Algorithm `mapstructure:"algorithm"`      // "bcrypt" (default) or "argon2id"
	BcryptCost    int       `mapstructure:"bcrypt_cost"`    // bcrypt work factor, 4 through 31
	Argon2Time    uint32    `mapstructure:"argon2_time"`    // argon2id iteration count
	Argon2Memory  uint32    `mapstructure:"argon2_memory"`  // argon2id memory cost in KiB
	Argon2Threads uint8     `mapstructure:"argon2_threads"` // argon2id lane count
	MinLength     int       `mapstructure:"min_length"`     // shortest password Policy accepts
}

// ApplyDefaults fills zero-valued fields with the package defaults.
func (c *Config) ApplyDefaults() {
	setIfZero(&c.Algorithm, AlgorithmBcrypt)
	setIfZero(&c.BcryptCost, DefaultBcryptCost)
	setIfZero(&c.Argon2Time, DefaultArgon2Time)
	setIfZero(&c.Argon2Memory, DefaultArgon2Memory)
	setIfZero(&c.Argon2Threads, DefaultArgon2Threads)
	setIfZero(&c.MinLength, DefaultMinLength)
}

// setIfZero fills dst with fallback when it holds the type's zero value.
func setIfZero[T comparable](dst *T, fallback T) {
	var zero T
	if *dst == zero {
		*dst = fallback
	}
}

// Validate rejects configurations the hashers cannot honor. Only the
// selected algorithm's parameters are checked.
func (c *Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("min_length must be >= 1 (got: %d)", c.MinLength)
	}
	switch c.Algorithm {
	case AlgorithmBcrypt:
		return c.validateBcrypt()
	case AlgorithmArgon2id:
		return c.validateArgon2()
	default:
		return fmt.Errorf("unsupported algorithm: %s (use bcrypt or argon2id)", c.Algorithm)
	}
}

func (c *Config) validateBcrypt() error {
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31 (got: %d)", c.BcryptCost)
	}
	return nil
}

func (c *Config) validateArgon2() error {
	if c.Argon2Time < 1 {
		return fmt.Errorf("argon2_time must be >= 1 (got: %d)", c.Argon2Time)
	}
	if c.Argon2Threads < 1 {
		return fmt.Errorf("argon2_threads must be >= 1 (got: %d)", c.Argon2Threads)
	}
	if c.Argon2Memory < 8*uint32(c.Argon2Threads) {
		return fmt.Errorf("argon2_memory must be at least 8 KiB per thread (got: %d)", c.Argon2Memory)
	}
	return nil
}

// NewHasher builds the configured Hasher. Zero-valued fields fall back to
// the package defaults, so NewHasher(Config{}) yields the stock bcrypt
// hasher.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	if cfg.Algorithm == AlgorithmArgon2id {
		return NewArgon2Hasher(
			WithArgon2Time(cfg.Argon2Time),
			WithArgon2Memory(cfg.Argon2Memory),
			WithArgon2Threads(cfg.Argon2Threads),
		)
	}
	return NewBcryptHasher(WithCost(cfg.BcryptCost))
}

// Policy derives the strength policy this configuration implies. Only
// MinLength participates; the character-class rules are fixed.
func (c Config) Policy() *Policy {
	c.ApplyDefaults()
	return NewPolicy(WithMinLength(c.MinLength))
}
