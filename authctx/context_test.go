package authctx

import (
	"context"
	"errors"
	"testing"

	"github.com/skillsenselab/authkit/token"
)

func TestSetGet(t *testing.T) {
	claims := token.Claims{"sub": "user-1", "type": token.TypeAccess}
	ctx := Set(context.Background(), claims)

	got, ok := Get[token.Claims](ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if got.Subject() != "user-1" {
		t.Errorf("Subject() = %q, want %q", got.Subject(), "user-1")
	}
}

func TestGet_Missing(t *testing.T) {
	_, ok := Get[token.Claims](context.Background())
	if ok {
		t.Error("expected ok=false for empty context")
	}
}

func TestGet_WrongType(t *testing.T) {
	type otherClaims struct{ Sub string }

	ctx := Set(context.Background(), token.Claims{"sub": "u"})
	_, ok := Get[*otherClaims](ctx)
	if ok {
		t.Error("expected ok=false for mismatched claims type")
	}
}

func TestMustGet(t *testing.T) {
	ctx := Set(context.Background(), token.Claims{"sub": "u"})
	claims := MustGet[token.Claims](ctx)
	if claims.Subject() != "u" {
		t.Errorf("Subject() = %q, want %q", claims.Subject(), "u")
	}
}

func TestMustGet_PanicsWhenMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing claims")
		}
	}()
	MustGet[token.Claims](context.Background())
}

func TestGetOrError(t *testing.T) {
	ctx := Set(context.Background(), token.Claims{"sub": "u"})
	if _, err := GetOrError[token.Claims](ctx); err != nil {
		t.Errorf("GetOrError() error = %v", err)
	}

	_, err := GetOrError[token.Claims](context.Background())
	if !errors.Is(err, ErrNoClaims) {
		t.Errorf("GetOrError() error = %v, want ErrNoClaims", err)
	}
}

func TestSet_CustomClaimsType(t *testing.T) {
	type sessionClaims struct {
		UserID string
		Role   string
	}

	ctx := Set(context.Background(), &sessionClaims{UserID: "u1", Role: "admin"})
	got, ok := Get[*sessionClaims](ctx)
	if !ok {
		t.Fatal("expected custom claims in context")
	}
	if got.UserID != "u1" || got.Role != "admin" {
		t.Errorf("unexpected claims: %+v", got)
	}
}
