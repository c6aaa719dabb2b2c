package authkit

// TokenVerifier verifies a token string and returns the parsed claims.
// This is the core verification contract — middleware and interceptors
// depend on this interface rather than specific implementations.
//
// The returned map holds the verified claims. It is typically stored in
// request context via authctx.Set and retrieved with authctx.Get[T].
//
// Implementations:
//   - token.Service — verifies signed expiring tokens
//   - Custom verifiers (API keys, opaque session lookups) via VerifierFunc
type TokenVerifier interface {
	VerifyToken(token string) (map[string]any, error)
}

// VerifierFunc adapts an ordinary function to the TokenVerifier interface.
// This is the simplest way to create a verifier:
//
//	verifier := authkit.VerifierFunc(func(token string) (map[string]any, error) {
//	    return myCustomVerification(token)
//	})
type VerifierFunc func(token string) (map[string]any, error)

// VerifyToken implements TokenVerifier.
func (f VerifierFunc) VerifyToken(token string) (map[string]any, error) {
	return f(token)
}

// TokenIssuer issues a signed token from claims.
// This is the token creation contract — services use this to issue tokens
// without depending on specific signing implementations.
type TokenIssuer interface {
	IssueToken(claims map[string]any) (string, error)
}

// IssuerFunc adapts an ordinary function to the TokenIssuer interface.
type IssuerFunc func(claims map[string]any) (string, error)

// IssueToken implements TokenIssuer.
func (f IssuerFunc) IssueToken(claims map[string]any) (string, error) {
	return f(claims)
}

// NewVerifier creates a TokenVerifier from a verification function.
// This is a convenience wrapper for VerifierFunc, useful for bridging
// services exposed as plain functions:
//
//	verifier := authkit.NewVerifier(tokenSvc.VerifierFunc())
func NewVerifier(fn func(string) (map[string]any, error)) TokenVerifier {
	return VerifierFunc(fn)
}
