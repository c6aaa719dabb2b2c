package token

import "time"

// Claims is the set of statements carried by a token. Values must be
// JSON-serializable. Numeric claims decode back as float64 after a
// sign/verify round trip.
type Claims map[string]any

// Registered claim names written and read by the service.
const (
	ClaimSubject  = "sub"
	ClaimIssuer   = "iss"
	ClaimExpires  = "exp"
	ClaimIssuedAt = "iat"
	ClaimTokenID  = "jti"
	ClaimType     = "type"
)

// Token type values stamped on the "type" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeReset   = "password_reset"
)

// Subject returns the "sub" claim, or "" if absent or not a string.
func (c Claims) Subject() string {
	s, _ := c[ClaimSubject].(string)
	return s
}

// Type returns the "type" claim, or "" if absent or not a string.
func (c Claims) Type() string {
	s, _ := c[ClaimType].(string)
	return s
}

// TokenID returns the "jti" claim, or "" if absent or not a string.
func (c Claims) TokenID() string {
	s, _ := c[ClaimTokenID].(string)
	return s
}

// ExpiresAt returns the "exp" claim as a time, and whether it was present.
func (c Claims) ExpiresAt() (time.Time, bool) {
	return c.timeClaim(ClaimExpires)
}

// IssuedAt returns the "iat" claim as a time, and whether it was present.
func (c Claims) IssuedAt() (time.Time, bool) {
	return c.timeClaim(ClaimIssuedAt)
}

// timeClaim reads a Unix-seconds claim. Freshly issued claims hold int64;
// claims decoded from a verified token hold float64.
func (c Claims) timeClaim(name string) (time.Time, bool) {
	switch v := c[name].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case int:
		return time.Unix(int64(v), 0), true
	default:
		return time.Time{}, false
	}
}
