// Package authctx carries verified claims through a request context.
//
// The accessors are generic so each caller decides its own claims shape;
// authkit never inspects the stored value. Verification middleware stores
// the token.Claims it extracted, handlers downstream pull them back out:
//
//	// after Verify succeeds, usually in middleware
//	ctx = authctx.Set(ctx, claims)
//
//	// in handlers
//	claims, ok := authctx.Get[token.Claims](ctx)
//	claims := authctx.MustGet[token.Claims](ctx) // panics if missing
package authctx

import (
	"context"
	"errors"
)

// claimsKey is unexported so no other package can collide with it.
type claimsKey struct{}

// ErrNoClaims is returned by GetOrError when the context holds no claims.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores verified claims of any type in the context.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Get returns the stored claims when they exist and have type T.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey{}).(T)
	return claims, ok
}

// MustGet returns the stored claims or panics. Reserve it for handlers
// that only run behind verification middleware.
func MustGet[T any](ctx context.Context) T {
	claims, ok := Get[T](ctx)
	if !ok {
		panic("authctx: claims not found in context or wrong type")
	}
	return claims
}

// GetOrError returns the stored claims, or ErrNoClaims when they are
// missing or of the wrong type.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if ok {
		return claims, nil
	}
	var zero T
	return zero, ErrNoClaims
}
