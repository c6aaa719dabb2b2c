package token

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric/noop"

	apperrors "github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/observability"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var _ observability.HealthChecker = (*Service)(nil)

func newTestService(t *testing.T, cfg *Config) *Service {
	t.Helper()
	if cfg == nil {
		cfg = &Config{Secret: testSecret}
	}
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

// spliceTokens grafts the payload of b onto the header and signature of a,
// producing a structurally valid token whose signature cannot match.
func spliceTokens(t *testing.T, a, b string) string {
	t.Helper()
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	if len(ap) != 3 || len(bp) != 3 {
		t.Fatal("expected three-segment tokens")
	}
	return ap[0] + "." + bp[1] + "." + ap[2]
}

func TestNewService_InvalidConfig(t *testing.T) {
	if _, err := NewService(&Config{}); err == nil {
		t.Error("expected error for missing secret")
	}
	if _, err := NewService(&Config{Secret: "s", Method: "RS256"}); err == nil {
		t.Error("expected error for unsupported signing method")
	}
}

func TestService_IssueVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "user-123", "role": "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Errorf("expected three-segment token, got %q", tok)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject() != "user-123" {
		t.Errorf("Subject() = %q, want %q", claims.Subject(), "user-123")
	}
	if claims["role"] != "admin" {
		t.Errorf(`claims["role"] = %v, want "admin"`, claims["role"])
	}

	exp, ok := claims.ExpiresAt()
	if !ok {
		t.Fatal("expected exp claim on issued token")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expected exp in the future, got %v", exp)
	}
	if _, ok := claims.IssuedAt(); !ok {
		t.Error("expected iat claim on issued token")
	}
}

func TestService_Issue_OverwritesCallerExpiry(t *testing.T) {
	svc := newTestService(t, nil)

	// A caller-supplied exp far in the past must be replaced by the TTL.
	tok, err := svc.Issue(Claims{ClaimSubject: "u", ClaimExpires: int64(1000)})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	exp, _ := claims.ExpiresAt()
	if !exp.After(time.Now()) {
		t.Errorf("caller exp should be overwritten, got %v", exp)
	}
}

func TestService_Issue_DoesNotModifyInput(t *testing.T) {
	svc := newTestService(t, nil)

	claims := Claims{ClaimSubject: "u"}
	if _, err := svc.Issue(claims); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(claims) != 1 {
		t.Errorf("input claims modified: %v", claims)
	}
}

func TestService_Verify_ZeroTTLExpiresImmediately(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"}, WithTTL(0))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(tok)
	if !apperrors.HasCode(err, apperrors.ErrCodeTokenExpired) {
		t.Errorf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestService_Verify_Expired(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"},
		WithIssuedAt(time.Now().Add(-2*time.Hour)),
		WithTTL(time.Hour),
	)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(tok)
	if !apperrors.HasCode(err, apperrors.ErrCodeTokenExpired) {
		t.Errorf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestService_Verify_Tampered(t *testing.T) {
	svc := newTestService(t, nil)

	a, err := svc.Issue(Claims{ClaimSubject: "alice"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	b, err := svc.Issue(Claims{ClaimSubject: "bob", "role": "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(spliceTokens(t, a, b))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for tampered payload, got %v", err)
	}

	// Flipping one character of the signature segment must also fail. The
	// first character is used because the final one carries base64 padding
	// bits a lenient decoder ignores.
	sig := strings.LastIndex(a, ".") + 1
	flip := byte('A')
	if a[sig] == flip {
		flip = 'B'
	}
	_, err = svc.Verify(a[:sig] + string(flip) + a[sig+1:])
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for tampered signature, got %v", err)
	}
}

func TestService_Verify_TamperedAndExpired(t *testing.T) {
	svc := newTestService(t, nil)

	// Both tokens are long expired; the splice breaks the signature. The
	// signature check must win, so the error is invalid, not expired.
	past := WithIssuedAt(time.Now().Add(-48 * time.Hour))
	a, err := svc.Issue(Claims{ClaimSubject: "alice"}, past, WithTTL(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	b, err := svc.Issue(Claims{ClaimSubject: "bob"}, past, WithTTL(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(spliceTokens(t, a, b))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN to take precedence over expiry, got %v", err)
	}
	if apperrors.HasCode(err, apperrors.ErrCodeTokenExpired) {
		t.Error("tampered token must not report TOKEN_EXPIRED")
	}
}

func TestService_Verify_WrongSecret(t *testing.T) {
	issuer := newTestService(t, &Config{Secret: "secret-one"})
	verifier := newTestService(t, &Config{Secret: "secret-two"})

	tok, err := issuer.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = verifier.Verify(tok)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for wrong secret, got %v", err)
	}
}

func TestService_Verify_AlgorithmMismatch(t *testing.T) {
	// Same secret, different algorithm: the verifier must reject the token
	// on its header algorithm, not fall through to a shared-key check.
	hs512 := newTestService(t, &Config{Secret: testSecret, Method: HS512})
	hs256 := newTestService(t, &Config{Secret: testSecret, Method: HS256})

	tok, err := hs512.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = hs256.Verify(tok)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for algorithm mismatch, got %v", err)
	}
}

func TestService_Verify_Garbage(t *testing.T) {
	svc := newTestService(t, nil)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"four segments", "a.b.c.d"},
		{"non-base64", "??.??.??"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(tc.token)
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
				t.Errorf("Verify(%q) = %v, want INVALID_TOKEN", tc.token, err)
			}
		})
	}
}

func TestService_Verify_ExpectedType(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"}, WithTokenType(TypeAccess))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Verify(tok, WithExpectedType(TypeAccess)); err != nil {
		t.Errorf("Verify() with matching type error = %v", err)
	}

	_, err = svc.Verify(tok, WithExpectedType(TypeRefresh))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Fatalf("expected INVALID_TOKEN for type mismatch, got %v", err)
	}
	appErr, _ := apperrors.AsAppError(err)
	if !strings.Contains(appErr.Message, TypeRefresh) {
		t.Errorf("type mismatch message should name the expected type, got %q", appErr.Message)
	}
	if appErr.Details["expected_type"] != TypeRefresh {
		t.Errorf("expected_type detail = %v, want %q", appErr.Details["expected_type"], TypeRefresh)
	}
}

func TestService_Verify_ExpectedTypeOnUntypedToken(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(tok, WithExpectedType(TypeAccess))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for missing type claim, got %v", err)
	}
}

func TestService_PerCallKey(t *testing.T) {
	svc := newTestService(t, nil)
	altKey := "another-signing-key"

	tok, err := svc.Issue(Claims{ClaimSubject: "u"}, WithKey(altKey))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Default key must not verify a token signed with the override.
	if _, err := svc.Verify(tok); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN with default key, got %v", err)
	}

	claims, err := svc.Verify(tok, WithVerifyKey(altKey))
	if err != nil {
		t.Fatalf("Verify() with override key error = %v", err)
	}
	if claims.Subject() != "u" {
		t.Errorf("Subject() = %q, want %q", claims.Subject(), "u")
	}
}

func TestService_Issue_EmptyKey(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Issue(Claims{ClaimSubject: "u"}, WithKey(""))
	if !apperrors.HasCode(err, apperrors.ErrCodeSigningError) {
		t.Errorf("expected SIGNING_ERROR for empty key, got %v", err)
	}
}

func TestService_SigningMethods(t *testing.T) {
	for _, method := range []SigningMethod{HS256, HS384, HS512} {
		t.Run(string(method), func(t *testing.T) {
			svc := newTestService(t, &Config{Secret: testSecret, Method: method})

			tok, err := svc.Issue(Claims{ClaimSubject: "u"})
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			claims, err := svc.Verify(tok)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.Subject() != "u" {
				t.Errorf("Subject() = %q, want %q", claims.Subject(), "u")
			}
		})
	}
}

func TestService_Leeway(t *testing.T) {
	svc := newTestService(t, &Config{Secret: testSecret, Leeway: 2 * time.Minute})

	tok, err := svc.Issue(Claims{ClaimSubject: "u"}, WithTTL(0))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Within leeway the zero-TTL token still verifies.
	if _, err := svc.Verify(tok); err != nil {
		t.Errorf("Verify() within leeway error = %v", err)
	}
}

func TestService_Issuer(t *testing.T) {
	withIssuer := newTestService(t, &Config{Secret: testSecret, Issuer: "authkit-test"})

	tok, err := withIssuer.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := withIssuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims[ClaimIssuer] != "authkit-test" {
		t.Errorf("iss = %v, want %q", claims[ClaimIssuer], "authkit-test")
	}

	// A token without the configured issuer is rejected.
	plain := newTestService(t, &Config{Secret: testSecret})
	anon, err := plain.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := withIssuer.Verify(anon); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for missing issuer, got %v", err)
	}
}

func TestService_IssueAccess(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.IssueAccess(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}
	claims, err := svc.Verify(tok, WithExpectedType(TypeAccess))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Type() != TypeAccess {
		t.Errorf("Type() = %q, want %q", claims.Type(), TypeAccess)
	}

	// Default access lifetime is DefaultAccessTokenTTL.
	exp, _ := claims.ExpiresAt()
	if exp.Before(time.Now().Add(14*time.Minute)) || exp.After(time.Now().Add(16*time.Minute)) {
		t.Errorf("access token expiry = %v, want ~%v out", exp, DefaultAccessTokenTTL)
	}
}

func TestService_IssueRefresh(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.IssueRefresh(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("IssueRefresh() error = %v", err)
	}
	claims, err := svc.Verify(tok, WithExpectedType(TypeRefresh))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	// Refresh tokens outlive access tokens.
	exp, _ := claims.ExpiresAt()
	if !exp.After(time.Now().Add(6 * 24 * time.Hour)) {
		t.Errorf("refresh token expiry too short: %v", exp)
	}
}

func TestService_ResetRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.IssueReset("user-42")
	if err != nil {
		t.Fatalf("IssueReset() error = %v", err)
	}

	subject, err := svc.VerifyReset(tok)
	if err != nil {
		t.Fatalf("VerifyReset() error = %v", err)
	}
	if subject != "user-42" {
		t.Errorf("VerifyReset() = %q, want %q", subject, "user-42")
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Type() != TypeReset {
		t.Errorf("Type() = %q, want %q", claims.Type(), TypeReset)
	}
	if _, err := uuid.Parse(claims.TokenID()); err != nil {
		t.Errorf("expected UUID jti on reset token, got %q", claims.TokenID())
	}
}

func TestService_IssueReset_EmptySubject(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.IssueReset("")
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidParameter) {
		t.Errorf("expected INVALID_PARAMETER for empty subject, got %v", err)
	}
}

func TestService_IssueReset_TokensDiffer(t *testing.T) {
	svc := newTestService(t, nil)

	a, err := svc.IssueReset("user-42")
	if err != nil {
		t.Fatalf("IssueReset() error = %v", err)
	}
	b, err := svc.IssueReset("user-42")
	if err != nil {
		t.Fatalf("IssueReset() error = %v", err)
	}
	if a == b {
		t.Error("two reset tokens for the same subject should differ")
	}
}

func TestService_VerifyReset_RejectsAccessToken(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.IssueAccess(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	_, err = svc.VerifyReset(tok)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for non-reset token, got %v", err)
	}
}

func TestService_WithUniqueID(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"}, WithUniqueID())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if _, err := uuid.Parse(claims.TokenID()); err != nil {
		t.Errorf("expected UUID jti, got %q", claims.TokenID())
	}
}

func TestService_VerifierFunc(t *testing.T) {
	svc := newTestService(t, nil)

	tok, err := svc.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	verify := svc.VerifierFunc()
	claims, err := verify(tok)
	if err != nil {
		t.Fatalf("VerifierFunc error = %v", err)
	}
	if claims["sub"] != "u" {
		t.Errorf(`claims["sub"] = %v, want "u"`, claims["sub"])
	}

	if _, err := verify("garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestService_IssuerFunc(t *testing.T) {
	svc := newTestService(t, nil)

	issue := svc.IssuerFunc()
	tok, err := issue(map[string]any{"sub": "u"})
	if err != nil {
		t.Fatalf("IssuerFunc error = %v", err)
	}
	if _, err := svc.Verify(tok); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestService_Options(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	svc, err := NewService(&Config{Secret: testSecret},
		WithLogger(logger.NewDefault("token-test")),
		WithMetrics(metrics),
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	// Exercise the issued/verified/expired/invalid recording paths.
	tok, err := svc.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.Verify(tok); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	expired, _ := svc.Issue(Claims{ClaimSubject: "u"}, WithTTL(0))
	svc.Verify(expired)
	svc.Verify("garbage")
	svc.Issue(Claims{}, WithKey(""))
}

func TestService_CheckHealth(t *testing.T) {
	svc := newTestService(t, nil)

	h := svc.CheckHealth(t.Context())
	if h.Status != observability.HealthStatusUp {
		t.Errorf("CheckHealth() status = %q, want %q (message: %s)", h.Status, observability.HealthStatusUp, h.Message)
	}
	if h.Name != "token" {
		t.Errorf("CheckHealth() name = %q, want %q", h.Name, "token")
	}
	if h.Details["method"] != string(HS256) {
		t.Errorf("CheckHealth() method detail = %q, want %q", h.Details["method"], HS256)
	}
}

func TestIsWellFormed(t *testing.T) {
	svc := newTestService(t, nil)
	valid, err := svc.Issue(Claims{ClaimSubject: "u"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	expired, err := svc.Issue(Claims{ClaimSubject: "u"}, WithTTL(0))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid token", valid, true},
		{"expired token still well-formed", expired, true},
		{"broken signature still well-formed", valid[:len(valid)-2] + "xx", true},
		{"empty", "", false},
		{"no dots", "nonsense", false},
		{"two segments", "aaaa.bbbb", false},
		{"four segments", "a.b.c.d", false},
		{"non-json segments", "aGVsbG8.aGVsbG8.aGVsbG8", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWellFormed(tc.token); got != tc.want {
				t.Errorf("IsWellFormed(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if len(secret) != 64 {
		t.Errorf("len(secret) = %d, want 64", len(secret))
	}
	if !regexp.MustCompile(`^[0-9a-f]+$`).MatchString(secret) {
		t.Errorf("secret is not lowercase hex: %q", secret)
	}

	other, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if secret == other {
		t.Error("two generated secrets should differ")
	}
}

func TestClaims_Accessors(t *testing.T) {
	c := Claims{
		ClaimSubject: "user-1",
		ClaimType:    TypeAccess,
		ClaimTokenID: "id-1",
		ClaimExpires: float64(1700000000),
	}
	if c.Subject() != "user-1" {
		t.Errorf("Subject() = %q", c.Subject())
	}
	if c.Type() != TypeAccess {
		t.Errorf("Type() = %q", c.Type())
	}
	if c.TokenID() != "id-1" {
		t.Errorf("TokenID() = %q", c.TokenID())
	}
	exp, ok := c.ExpiresAt()
	if !ok || exp.Unix() != 1700000000 {
		t.Errorf("ExpiresAt() = %v, %v", exp, ok)
	}
}

func TestClaims_AccessorsMissing(t *testing.T) {
	c := Claims{}
	if c.Subject() != "" || c.Type() != "" || c.TokenID() != "" {
		t.Error("expected empty strings for missing claims")
	}
	if _, ok := c.ExpiresAt(); ok {
		t.Error("expected ok=false for missing exp")
	}
	if _, ok := c.IssuedAt(); ok {
		t.Error("expected ok=false for missing iat")
	}
}

func TestClaims_TimeClaimTypes(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int64
		ok   bool
	}{
		{"float64", float64(1700000000), 1700000000, true},
		{"int64", int64(1700000000), 1700000000, true},
		{"int", int(1700000000), 1700000000, true},
		{"string rejected", "1700000000", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Claims{ClaimExpires: tc.val}
			got, ok := c.ExpiresAt()
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Unix() != tc.want {
				t.Errorf("ExpiresAt() = %v, want unix %d", got, tc.want)
			}
		})
	}
}
