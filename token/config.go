package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the HMAC-SHA2 algorithm used to sign tokens.
// Only symmetric methods are supported; signing and verification share
// one secret.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// hmacMethods maps each accepted method onto its golang-jwt
// implementation. Membership in this map is what Validate accepts.
var hmacMethods = map[SigningMethod]gojwt.SigningMethod{
	HS256: gojwt.SigningMethodHS256,
	HS384: gojwt.SigningMethodHS384,
	HS512: gojwt.SigningMethodHS512,
}

// Token lifetimes applied by ApplyDefaults.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultResetTokenTTL   = 24 * time.Hour
)

// Config configures the token Service. Secret is the only required
// field; ApplyDefaults fills everything else.
type Config struct {
	// Secret is the shared HMAC key used for both signing and
	// verification (required).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method selects the signing algorithm. Defaults to HS256.
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer, when set, is stamped on issued tokens as the "iss" claim
	// and enforced during verification.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// AccessTokenTTL bounds how long an access token stays valid.
	// Defaults to DefaultAccessTokenTTL.
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTL bounds how long a refresh token stays valid.
	// Defaults to DefaultRefreshTokenTTL.
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`

	// ResetTokenTTL bounds how long a password reset token stays valid.
	// Defaults to DefaultResetTokenTTL.
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" mapstructure:"reset_token_ttl"`

	// Leeway is the clock skew tolerated when checking expiry and
	// not-before claims. Zero means exact time comparison.
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

// ApplyDefaults fills zero-valued fields with the package defaults. An
// explicit Leeway of zero is left alone; there is no default skew.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	defaultTTL(&c.AccessTokenTTL, DefaultAccessTokenTTL)
	defaultTTL(&c.RefreshTokenTTL, DefaultRefreshTokenTTL)
	defaultTTL(&c.ResetTokenTTL, DefaultResetTokenTTL)
}

func defaultTTL(d *time.Duration, fallback time.Duration) {
	if *d == 0 {
		*d = fallback
	}
}

// Validate checks that the config can sign and verify tokens.
func (c *Config) Validate() error {
	if _, ok := hmacMethods[c.Method]; !ok {
		return errors.New("token: unsupported signing method: " + string(c.Method))
	}
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	return nil
}

// signingMethod resolves Method to its golang-jwt implementation.
// Validate guarantees the lookup hits; HS256 covers the zero value for
// configs used without it.
func (c *Config) signingMethod() gojwt.SigningMethod {
	if m, ok := hmacMethods[c.Method]; ok {
		return m
	}
	return gojwt.SigningMethodHS256
}
