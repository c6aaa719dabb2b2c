package authkit

import (
	"sort"
	"testing"
)

func stubVerifier(subject string) TokenVerifier {
	return VerifierFunc(func(string) (map[string]any, error) {
		return map[string]any{"sub": subject}, nil
	})
}

func TestRegistryRegisterGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register("access", stubVerifier("a"))

	v, ok := reg.Get("access")
	if !ok || v == nil {
		t.Fatal("expected registered verifier")
	}

	if _, ok := reg.Get("missing"); ok {
		t.Error("expected ok=false for unregistered name")
	}
}

func TestRegistryFirstRegisteredIsDefault(t *testing.T) {
	reg := NewRegistry()
	reg.Register("first", stubVerifier("first"))
	reg.Register("second", stubVerifier("second"))

	v, ok := reg.Default()
	if !ok {
		t.Fatal("expected a default verifier")
	}
	claims, err := v.VerifyToken("x")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims["sub"] != "first" {
		t.Errorf("default verifier = %v, want the first registered", claims["sub"])
	}
}

func TestRegistrySetDefault(t *testing.T) {
	reg := NewRegistry()
	reg.Register("first", stubVerifier("first"))
	reg.Register("second", stubVerifier("second"))

	if err := reg.SetDefault("second"); err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}
	v, _ := reg.Default()
	claims, _ := v.VerifyToken("x")
	if claims["sub"] != "second" {
		t.Errorf("default verifier = %v, want second", claims["sub"])
	}

	if err := reg.SetDefault("missing"); err == nil {
		t.Error("expected error for unregistered default")
	}
}

func TestRegistryDefaultEmpty(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Default(); ok {
		t.Error("expected no default on empty registry")
	}
}

func TestRegistryMustGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register("access", stubVerifier("a"))

	if v := reg.MustGet("access"); v == nil {
		t.Error("expected verifier from MustGet")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered name")
		}
	}()
	reg.MustGet("missing")
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("access", stubVerifier("a"))
	reg.Register("refresh", stubVerifier("r"))

	names := reg.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "access" || names[1] != "refresh" {
		t.Errorf("Names() = %v, want [access refresh]", names)
	}
}

func TestRegistryOverwrite(t *testing.T) {
	reg := NewRegistry()
	reg.Register("access", stubVerifier("old"))
	reg.Register("access", stubVerifier("new"))

	v, _ := reg.Get("access")
	claims, _ := v.VerifyToken("x")
	if claims["sub"] != "new" {
		t.Errorf("verifier = %v, want the re-registered one", claims["sub"])
	}
}
