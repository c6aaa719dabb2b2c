// Package token issues and verifies signed, expiring session tokens.
//
// Tokens are JWTs signed with an HMAC secret. Issue always stamps the
// expiry claim from the effective TTL, overwriting any caller-supplied
// value. Verify checks the signature first (rejecting any token whose
// header algorithm differs from the configured one), then expiry, then
// an optional expected token type, and returns typed errors from the
// errors package for each failure class.
//
// Usage:
//
//	svc, err := token.NewService(&token.Config{Secret: secret})
//	tok, err := svc.IssueAccess(token.Claims{token.ClaimSubject: "user-123"})
//
//	claims, err := svc.Verify(tok, token.WithExpectedType(token.TypeAccess))
//	if errors.HasCode(err, errors.ErrCodeTokenExpired) {
//	    // prompt for re-authentication
//	}
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/observability"
	"github.com/skillsenselab/authkit/random"
)

// Service issues and verifies signed tokens with map claims.
type Service struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(log *logger.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics sets the metric instruments recorded by the service.
func WithMetrics(metrics *observability.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = metrics }
}

// NewService creates a new token service.
func NewService(cfg *Config, opts ...ServiceOption) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		cfg: *cfg,
		log: logger.Get(logger.ComponentToken),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueOption customizes a single Issue call.
type IssueOption func(*issueOptions)

type issueOptions struct {
	ttl       time.Duration
	ttlSet    bool
	key       string
	keySet    bool
	tokenType string
	issuedAt  time.Time
	uniqueID  bool
}

// WithTTL overrides the token lifetime for this call. A zero ttl produces
// a token that is already expired when issued.
func WithTTL(ttl time.Duration) IssueOption {
	return func(o *issueOptions) {
		o.ttl = ttl
		o.ttlSet = true
	}
}

// WithKey overrides the signing secret for this call.
func WithKey(secret string) IssueOption {
	return func(o *issueOptions) {
		o.key = secret
		o.keySet = true
	}
}

// WithTokenType stamps the "type" claim on the issued token.
func WithTokenType(tokenType string) IssueOption {
	return func(o *issueOptions) { o.tokenType = tokenType }
}

// WithIssuedAt overrides the clock used for the "iat" and "exp" claims.
func WithIssuedAt(t time.Time) IssueOption {
	return func(o *issueOptions) { o.issuedAt = t }
}

// WithUniqueID stamps a random "jti" claim so otherwise identical tokens
// issued in the same second still differ.
func WithUniqueID() IssueOption {
	return func(o *issueOptions) { o.uniqueID = true }
}

// Issue creates a signed token carrying the given claims. The expiry claim
// is always set from the effective TTL (default: AccessTokenTTL); any "exp"
// in the input claims is overwritten. The input map is not modified.
func (s *Service) Issue(claims Claims, opts ...IssueOption) (string, error) {
	o := issueOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	key := s.cfg.Secret
	if o.keySet {
		key = o.key
	}
	if key == "" {
		appErr := apperrors.SigningError(errors.New("token: empty signing key"))
		s.log.Error("token signing failed", logger.ErrorFields("issue", appErr))
		s.recordError("signing_error")
		return "", appErr
	}

	ttl := s.cfg.AccessTokenTTL
	if o.ttlSet {
		ttl = o.ttl
	}

	now := time.Now()
	if !o.issuedAt.IsZero() {
		now = o.issuedAt
	}

	mc := make(gojwt.MapClaims, len(claims)+4)
	for k, v := range claims {
		mc[k] = v
	}
	if s.cfg.Issuer != "" {
		if _, ok := mc[ClaimIssuer]; !ok {
			mc[ClaimIssuer] = s.cfg.Issuer
		}
	}
	if o.tokenType != "" {
		mc[ClaimType] = o.tokenType
	}
	if o.uniqueID {
		mc[ClaimTokenID] = uuid.NewString()
	}
	mc[ClaimIssuedAt] = now.Unix()
	mc[ClaimExpires] = now.Add(ttl).Unix()

	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), mc).SignedString([]byte(key))
	if err != nil {
		appErr := apperrors.SigningError(err)
		s.log.Error("token signing failed", logger.ErrorFields("issue", err))
		s.recordError("signing_error")
		return "", appErr
	}

	s.log.Debug("token issued", logger.OpFields("issue",
		logger.FieldTokenType, o.tokenType,
		"ttl", ttl.String(),
	))
	s.recordIssued(o.tokenType)
	return signed, nil
}

// IssueAccess creates a signed access token with the configured access TTL.
func (s *Service) IssueAccess(claims Claims, opts ...IssueOption) (string, error) {
	merged := append([]IssueOption{
		WithTTL(s.cfg.AccessTokenTTL),
		WithTokenType(TypeAccess),
	}, opts...)
	return s.Issue(claims, merged...)
}

// IssueRefresh creates a signed refresh token with the configured refresh TTL.
func (s *Service) IssueRefresh(claims Claims, opts ...IssueOption) (string, error) {
	merged := append([]IssueOption{
		WithTTL(s.cfg.RefreshTokenTTL),
		WithTokenType(TypeRefresh),
	}, opts...)
	return s.Issue(claims, merged...)
}

// IssueReset creates a password reset token for the given subject with the
// configured reset TTL and a unique token ID.
func (s *Service) IssueReset(subject string, opts ...IssueOption) (string, error) {
	if subject == "" {
		return "", apperrors.InvalidParameter("subject", "must not be empty")
	}
	merged := append([]IssueOption{
		WithTTL(s.cfg.ResetTokenTTL),
		WithTokenType(TypeReset),
		WithUniqueID(),
	}, opts...)
	return s.Issue(Claims{ClaimSubject: subject}, merged...)
}

// VerifyOption customizes a single Verify call.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	expectedType string
	key          string
	keySet       bool
}

// WithExpectedType requires the token's "type" claim to match.
func WithExpectedType(tokenType string) VerifyOption {
	return func(o *verifyOptions) { o.expectedType = tokenType }
}

// WithVerifyKey overrides the verification secret for this call.
func WithVerifyKey(secret string) VerifyOption {
	return func(o *verifyOptions) {
		o.key = secret
		o.keySet = true
	}
}

// Verify checks a token's signature, expiry, and optionally its type claim,
// in that order, and returns the embedded claims.
//
// Failures map to the error taxonomy: an expired but otherwise valid token
// returns a TOKEN_EXPIRED error; any signature, algorithm, structure, or
// type mismatch returns an INVALID_TOKEN error.
func (s *Service) Verify(tokenString string, opts ...VerifyOption) (Claims, error) {
	o := verifyOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	key := s.cfg.Secret
	if o.keySet {
		key = o.key
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
	}
	if s.cfg.Leeway > 0 {
		parserOpts = append(parserOpts, gojwt.WithLeeway(s.cfg.Leeway))
	}
	if s.cfg.Issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(s.cfg.Issuer))
	}

	claims := gojwt.MapClaims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.cfg.signingMethod().Alg() {
			return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(key), nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			s.log.Warn("token verification failed", logger.ErrorFields("verify", err))
			s.recordVerified(observability.OutcomeExpired)
			return nil, apperrors.TokenExpired().WithCause(err)
		}
		s.log.Warn("token verification failed", logger.ErrorFields("verify", err))
		s.recordVerified(observability.OutcomeInvalid)
		return nil, apperrors.InvalidToken("").WithCause(err)
	}
	if !tok.Valid {
		s.recordVerified(observability.OutcomeInvalid)
		return nil, apperrors.InvalidToken("")
	}

	if o.expectedType != "" {
		if typ, _ := claims[ClaimType].(string); typ != o.expectedType {
			appErr := apperrors.InvalidToken(fmt.Sprintf("Invalid token type: expected %s.", o.expectedType)).
				WithDetail("expected_type", o.expectedType)
			s.log.Warn("token verification failed", logger.OpFields("verify",
				"expected_type", o.expectedType,
			))
			s.recordVerified(observability.OutcomeInvalid)
			return nil, appErr
		}
	}

	s.log.Debug("token verified", logger.OpFields("verify", logger.FieldTokenType, Claims(claims).Type()))
	s.recordVerified(observability.OutcomeOK)
	return Claims(claims), nil
}

// VerifyReset verifies a password reset token and returns its subject.
func (s *Service) VerifyReset(tokenString string, opts ...VerifyOption) (string, error) {
	claims, err := s.Verify(tokenString, append(opts, WithExpectedType(TypeReset))...)
	if err != nil {
		return "", err
	}
	subject := claims.Subject()
	if subject == "" {
		return "", apperrors.InvalidToken("Invalid password reset token.")
	}
	return subject, nil
}

// IssueToken issues a token from a raw claims map with the default TTL.
// Together with VerifyToken it lets the service satisfy the authkit
// TokenIssuer and TokenVerifier contracts without knowing the Claims type.
func (s *Service) IssueToken(claims map[string]any) (string, error) {
	return s.Issue(Claims(claims))
}

// VerifyToken verifies a token string and returns the claims as a raw map.
func (s *Service) VerifyToken(tokenString string) (map[string]any, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifierFunc returns a function that verifies a token string and returns
// the raw claims map, for callers that bridge with plain function values.
func (s *Service) VerifierFunc() func(string) (map[string]any, error) {
	return s.VerifyToken
}

// IssuerFunc returns a function that issues a token from a raw claims map.
func (s *Service) IssuerFunc() func(map[string]any) (string, error) {
	return s.IssueToken
}

// CheckHealth reports service health by round-tripping a short-lived probe
// token through Issue and Verify.
func (s *Service) CheckHealth(ctx context.Context) observability.Health {
	probe, err := s.Issue(Claims{ClaimSubject: "health-probe"}, WithTTL(time.Minute))
	if err == nil {
		_, err = s.Verify(probe)
	}
	if err != nil {
		return observability.Unhealthy("token", err)
	}
	return observability.Healthy("token").WithDetail("method", string(s.cfg.Method))
}

// IsWellFormed reports whether the string has the structural shape of a
// signed token: three dot-separated segments with base64url-encoded JSON
// header and claims. It performs no signature or expiry checks, so a
// well-formed token may still fail Verify.
func IsWellFormed(tokenString string) bool {
	parser := gojwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenString, gojwt.MapClaims{})
	return err == nil
}

// GenerateSecret returns a cryptographically random 64-character hex string
// suitable for use as a signing secret.
func GenerateSecret() (string, error) {
	secret, err := random.Hex(32)
	if err != nil {
		return "", fmt.Errorf("token: generate secret: %w", err)
	}
	return secret, nil
}

func (s *Service) recordIssued(tokenType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTokenIssued(context.Background(), tokenType)
}

func (s *Service) recordVerified(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTokenVerified(context.Background(), outcome)
}

func (s *Service) recordError(errType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordError(context.Background(), errType, "token")
}
